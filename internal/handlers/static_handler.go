package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"skillswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// StaticHandler отдает собранный фронтенд. Неизвестные пути получают index.html,
// маршрутизацией занимается клиент.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// reservedPrefixes не обслуживаются SPA: на них отвечает JSON 404
var reservedPrefixes = []string{"/api/", "/uploads/", "/ws", "/metrics", "/health"}

// NoRoute вешается на router.NoRoute
func (h *StaticHandler) NoRoute(c *gin.Context) {
	p := c.Request.URL.Path
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
		return
	}
	for _, prefix := range reservedPrefixes {
		if p == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(p, prefix) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
			return
		}
	}

	if h.dir == "" {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
		return
	}

	if file, ok := h.existingFile(p); ok {
		c.File(file)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.File(index)
}

// existingFile - обычный файл внутри dir; path.Clean с ведущим "/" не выпускает за его пределы
func (h *StaticHandler) existingFile(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(h.dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

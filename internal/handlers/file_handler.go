package handlers

import (
	"net/http"
	"strconv"

	"skillswap/internal/services"

	"github.com/gin-gonic/gin"
)

// FileHandler - метаданные загруженных файлов и отдача их байтов
type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(h.RequireAuth())
	{
		files.GET("/:id", h.GetFile)
		files.DELETE("/:id", h.DeleteFile)
	}
}

// RegisterPublicRoutes - /uploads/<filename> вне /api
func (h *FileHandler) RegisterPublicRoutes(r gin.IRouter) {
	r.GET("/uploads/:filename", h.ServeUpload)
	r.HEAD("/uploads/:filename", h.ServeUpload)
}

func (h *FileHandler) GetFile(c *gin.Context) {
	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	file, err := h.uploadService.GetFile(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uploadService.DeleteFile(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FileHandler) ServeUpload(c *gin.Context) {
	obj, err := h.uploadService.OpenUpload(c.Request.Context(), c.Param("filename"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	headers := map[string]string{
		"Cache-Control":          "public, max-age=86400",
		"X-Content-Type-Options": "nosniff",
	}
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentType)
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Status(http.StatusOK)
		return
	}

	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, headers)
}

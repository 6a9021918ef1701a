package ws

import (
	"net/http"
	"net/url"
	"strings"

	"skillswap/internal/logger"
	"skillswap/pkg/apperrors"
	"skillswap/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Manager  *WebSocketManager
	upgrader websocket.Upgrader
}

// NewWebSocketHandler - allowedOrigins как в CORS; запросы того же хоста разрешены всегда
func NewWebSocketHandler(manager *WebSocketManager, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(strings.TrimRight(a, "/"), origin) {
				return true
			}
		}
		return false
	}
}

// ServeWS - GET /ws. Пользователь уже аутентифицирован AuthMiddleware.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		logger.CtxWithError(c.Request.Context(), "WebSocket upgrade error", err)
		return
	}

	client := NewClient(h.Manager, conn, userID)
	if !h.Manager.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

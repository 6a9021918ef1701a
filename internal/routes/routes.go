package routes

import (
	"skillswap/internal/handlers"
	"skillswap/internal/logger"
	"skillswap/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
// wsAuth - аутентификация для /ws (токен допускается в query).
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	wsAuth gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.SkillHandler.RegisterRoutes(api)
		appHandlers.SwapHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.StatsHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}

	appHandlers.FileHandler.RegisterPublicRoutes(ginRouter)
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	// Регистрация WebSocket
	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(wsAuth)
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")

	// Все остальное - фронтенд
	ginRouter.NoRoute(appHandlers.StaticHandler.NoRoute)
}

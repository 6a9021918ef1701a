package handlers

import (
	"net/http"

	"skillswap/internal/services"
	"skillswap/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler - текущий пользователь. Вход и выход выполняет внешний провайдер.
type AuthHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAuthHandler(base *BaseHandler, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	auth.Use(h.RequireAuth())
	{
		auth.GET("/user", h.GetCurrentUser)
		auth.PATCH("/user", h.UpdateProfile)
	}
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

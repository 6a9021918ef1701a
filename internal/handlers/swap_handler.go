package handlers

import (
	"net/http"

	"skillswap/internal/services"
	"skillswap/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SwapHandler - обмены и переписка по ним
type SwapHandler struct {
	*BaseHandler
	swapService    services.SwapService
	messageService services.MessageService
}

func NewSwapHandler(base *BaseHandler, swapService services.SwapService, messageService services.MessageService) *SwapHandler {
	return &SwapHandler{
		BaseHandler:    base,
		swapService:    swapService,
		messageService: messageService,
	}
}

func (h *SwapHandler) RegisterRoutes(r *gin.RouterGroup) {
	swaps := r.Group("/swaps")
	swaps.Use(h.RequireAuth())
	{
		swaps.GET("", h.ListSwaps)
		swaps.GET("/counts", h.GetSwapCounts)
		swaps.POST("", h.CreateSwap)
		swaps.GET("/:id", h.GetSwap)
		swaps.PUT("/:id", h.UpdateSwap)

		swaps.GET("/:id/messages", h.ListMessages)
		swaps.POST("/:id/messages", h.CreateMessage)
	}
}

func (h *SwapHandler) ListSwaps(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ListSwapsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	swaps, err := h.swapService.ListSwaps(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, swaps)
}

func (h *SwapHandler) GetSwapCounts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	counts, err := h.swapService.GetSwapCounts(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func (h *SwapHandler) GetSwap(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	swap, err := h.swapService.GetSwap(h.GetDB(c), userID, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

func (h *SwapHandler) CreateSwap(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	swap, err := h.swapService.CreateSwap(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, swap)
}

func (h *SwapHandler) UpdateSwap(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSwapRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	swap, err := h.swapService.UpdateSwap(h.GetDB(c), userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

// --- Messages ---

func (h *SwapHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	swapID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	messages, err := h.messageService.ListMessages(h.GetDB(c), userID, swapID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *SwapHandler) CreateMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	swapID, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.messageService.CreateMessage(h.GetDB(c), userID, swapID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

package handlers

import (
	"net/http"

	"skillswap/internal/services"
	"skillswap/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", h.RequireAuth(), h.CreateReview)
	}
}

// ListReviews - ?userId= отзывы о пользователе, ?swapId= отзывы по обмену
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var query dto.ListReviewsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	reviews, err := h.reviewService.ListReviews(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

package handlers

import (
	"net/http"

	"skillswap/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	*BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(base *BaseHandler, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  base,
		statsService: statsService,
	}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/:userId/stats", h.GetUserStats)

	community := r.Group("/community")
	{
		community.GET("/stats", h.GetCommunityStats)
		community.GET("/top-members", h.GetTopMembers)
	}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	stats, err := h.statsService.GetUserStats(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetCommunityStats(c *gin.Context) {
	stats, err := h.statsService.GetCommunityStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetTopMembers(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", services.DefaultTopMembers)

	members, err := h.statsService.GetTopMembers(h.GetDB(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

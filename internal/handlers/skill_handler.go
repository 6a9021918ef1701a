package handlers

import (
	"net/http"

	"skillswap/internal/services"
	"skillswap/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	*BaseHandler
	skillService services.SkillService
}

func NewSkillHandler(base *BaseHandler, skillService services.SkillService) *SkillHandler {
	return &SkillHandler{
		BaseHandler:  base,
		skillService: skillService,
	}
}

func (h *SkillHandler) RegisterRoutes(r *gin.RouterGroup) {
	skills := r.Group("/skills")
	{
		// Public routes
		skills.GET("", h.ListSkills)
		skills.GET("/:id", h.GetSkill)

		// Owner routes
		skills.POST("", h.RequireAuth(), h.CreateSkill)
		skills.PUT("/:id", h.RequireAuth(), h.UpdateSkill)
		skills.DELETE("/:id", h.RequireAuth(), h.DeleteSkill)
	}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	var query dto.ListSkillsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.skillService.ListSkills(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SkillHandler) GetSkill(c *gin.Context) {
	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	skill, err := h.skillService.GetSkill(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	skill, err := h.skillService.CreateSkill(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, skill)
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	skill, err := h.skillService.UpdateSkill(h.GetDB(c), userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.skillService.DeleteSkill(h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"nutriplan/models"
	"nutriplan/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

// GET /goals
func (h *GoalController) Get(c *gin.Context) {
	g, err := h.Svc.Get(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// PUT /goals
func (h *GoalController) Update(c *gin.Context) {
	var req models.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "invalid body")
		return
	}
	g, err := h.Svc.Upsert(c.Request.Context(), userIDFromCtx(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

package controllers

import (
	"net/http"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/services"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	Svc *services.MealPlanService
}

func NewMealPlanController(svc *services.MealPlanService) *MealPlanController {
	return &MealPlanController{Svc: svc}
}

// GET /meal-plans?startDate=2024-01-05&endDate=2024-01-10
func (h *MealPlanController) List(c *gin.Context) {
	start, hasStart, ok := dateQuery(c, "startDate")
	if !ok {
		return
	}
	end, hasEnd, ok := dateQuery(c, "endDate")
	if !ok {
		return
	}
	var rng *repository.DateRange
	switch {
	case hasStart && hasEnd:
		rng = &repository.DateRange{Start: start, End: end}
	case hasStart:
		badRequest(c, "endDate", "is required with startDate")
		return
	case hasEnd:
		badRequest(c, "startDate", "is required with endDate")
		return
	}

	out, err := h.Svc.List(c.Request.Context(), userIDFromCtx(c), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /meal-plans/day?date=2024-01-08
func (h *MealPlanController) Day(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.Day(c.Request.Context(), userIDFromCtx(c), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /meal-plans/week?date=2024-01-08
func (h *MealPlanController) Week(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.Week(c.Request.Context(), userIDFromCtx(c), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /meal-plans
func (h *MealPlanController) Create(c *gin.Context) {
	var req models.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "invalid body")
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), userIDFromCtx(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// POST /meal-plans/:id/email
func (h *MealPlanController) Email(c *gin.Context) {
	if err := h.Svc.EmailDigest(c.Request.Context(), userIDFromCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan sent"})
}

// dayParam reads ?date=, defaulting to today.
func dayParam(c *gin.Context) (time.Time, bool) {
	day, present, ok := dateQuery(c, "date")
	if !ok {
		return time.Time{}, false
	}
	if !present {
		day = time.Now()
	}
	return day, true
}

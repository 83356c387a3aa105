package controllers

import (
	"net/http"
	"time"

	"nutriplan/services"
	"nutriplan/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// GET /analytics/daily?from=2024-01-01&to=2024-01-07
// Defaults to the current Sunday-start week.
func (h *AnalyticsController) Daily(c *gin.Context) {
	first, last := utils.WeekBounds(time.Now())
	from, hasFrom, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, hasTo, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	if !hasFrom {
		from = first
	}
	if !hasTo {
		to = last
	}

	out, err := h.Svc.DailyNutrition(c.Request.Context(), userIDFromCtx(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

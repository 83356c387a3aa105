package controllers

import (
	"net/http"

	"nutriplan/models"
	"nutriplan/services"
	"nutriplan/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Svc *services.FoodService
}

func NewFoodController(svc *services.FoodService) *FoodController {
	return &FoodController{Svc: svc}
}

// GET /foods?q=chic&limit=20
func (h *FoodController) Search(c *gin.Context) {
	limit, err := utils.ParseLimit(c.Query("limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := h.Svc.Search(c.Request.Context(), userIDFromCtx(c), utils.NewSearchCriteria(c.Query("q"), ""), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /foods
func (h *FoodController) Create(c *gin.Context) {
	var req models.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "invalid body")
		return
	}
	food, err := h.Svc.Create(c.Request.Context(), userIDFromCtx(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// POST /foods/recognize  { "imageBase64": "data:..." }
func (h *FoodController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "imageBase64", "is required")
		return
	}
	out, err := h.Svc.Recognize(c.Request.Context(), userIDFromCtx(c), req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /foods/import?q=oat milk
func (h *FoodController) Import(c *gin.Context) {
	out, err := h.Svc.Import(c.Request.Context(), userIDFromCtx(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

package controllers

import (
	"net/http"
	"strings"

	"nutriplan/models"
	"nutriplan/services"
	"nutriplan/utils"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	Svc *services.RecipeService
}

func NewRecipeController(svc *services.RecipeService) *RecipeController {
	return &RecipeController{Svc: svc}
}

// GET /recipes?q=&category=
func (h *RecipeController) List(c *gin.Context) {
	category := c.Query("category")
	if strings.TrimSpace(category) != "" {
		mt, ok := models.ParseMealType(category)
		if !ok {
			badRequest(c, "category", "must be one of breakfast, lunch, dinner, snack")
			return
		}
		category = string(mt)
	}
	criteria := utils.NewSearchCriteria(c.Query("q"), category)
	out, err := h.Svc.List(c.Request.Context(), userIDFromCtx(c), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /recipes/:id
func (h *RecipeController) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), userIDFromCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /recipes
func (h *RecipeController) Create(c *gin.Context) {
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "invalid body")
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), userIDFromCtx(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /recipes/:id/nutrition
func (h *RecipeController) Nutrition(c *gin.Context) {
	out, err := h.Svc.Nutrition(c.Request.Context(), userIDFromCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

package utils

import (
	"testing"

	"nutriplan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(name string, kcal, protein, carbs, fat, fiber, sugar, sodium float64) models.FoodItem {
	return models.FoodItem{
		ID: name, Name: name,
		Calories: kcal, Protein: protein, Carbs: carbs, Fat: fat,
		Fiber: fiber, Sugar: sugar, Sodium: sodium,
		ServingSize: 100, ServingUnit: "grams",
	}
}

var (
	chickenBreast = food("Chicken Breast", 165, 31, 0, 3.6, 0, 0, 74)
	brownRice     = food("Brown Rice", 111, 2.6, 23, 0.9, 1.8, 0.4, 5)
	broccoli      = food("Broccoli", 34, 2.8, 7, 0.4, 2.6, 1.5, 33)
)

func line(f models.FoodItem, qty float64) models.Ingredient {
	return models.Ingredient{FoodID: f.ID, Food: f, Quantity: qty, Unit: "grams"}
}

func sampleRecipe() models.Recipe {
	return models.Recipe{
		ID:       "r1",
		Name:     "Grilled Chicken with Brown Rice and Broccoli",
		Servings: 2,
		Ingredients: []models.Ingredient{
			line(chickenBreast, 200),
			line(brownRice, 150),
			line(broccoli, 200),
		},
	}
}

func TestAggregateEmptyIsZero(t *testing.T) {
	got, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, NutrientTotals{}, got)
}

func TestAggregateScaleOneReturnsLabel(t *testing.T) {
	got, err := Aggregate([]models.Ingredient{line(brownRice, 100)})
	require.NoError(t, err)
	assert.Equal(t, PerServing(brownRice), got)
}

func TestAggregateSampleRecipe(t *testing.T) {
	got, err := Aggregate(sampleRecipe().Ingredients)
	require.NoError(t, err)
	assert.InDelta(t, 564.5, got.Calories, 1e-9)
	assert.InDelta(t, 62+3.9+5.6, got.Protein, 1e-9)
	assert.InDelta(t, 34.5+14, got.Carbs, 1e-9)
	assert.InDelta(t, 148+7.5+66, got.Sodium, 1e-9)
}

func TestAggregateIsLinearInQuantity(t *testing.T) {
	single, err := Aggregate([]models.Ingredient{line(chickenBreast, 120), line(broccoli, 80)})
	require.NoError(t, err)
	double, err := Aggregate([]models.Ingredient{line(chickenBreast, 240), line(broccoli, 160)})
	require.NoError(t, err)

	want := single.Scale(2)
	assert.InDelta(t, want.Calories, double.Calories, 1e-9)
	assert.InDelta(t, want.Protein, double.Protein, 1e-9)
	assert.InDelta(t, want.Fiber, double.Fiber, 1e-9)
	assert.InDelta(t, want.Sodium, double.Sodium, 1e-9)
}

func TestAggregateRejectsBadLines(t *testing.T) {
	bad := chickenBreast
	bad.ServingSize = 0

	_, err := Aggregate([]models.Ingredient{line(bad, 100), line(broccoli, 0)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "ingredients[0].food.servingSize", verr.Fields[0].Field)
	assert.Equal(t, "ingredients[1].quantity", verr.Fields[1].Field)
}

func TestAnalyzeRecipePerServing(t *testing.T) {
	rn, err := AnalyzeRecipe(sampleRecipe())
	require.NoError(t, err)
	assert.Equal(t, 2, rn.Servings)
	assert.InDelta(t, 564.5, rn.Total.Calories, 1e-9)
	assert.InDelta(t, 282.25, rn.PerServing.Calories, 1e-9)
}

func TestItemNutritionScalesByServings(t *testing.T) {
	r := sampleRecipe()
	got, err := ItemNutrition(models.MealPlanItem{Recipe: &r, Quantity: 1.5})
	require.NoError(t, err)
	assert.InDelta(t, 282.25*1.5, got.Calories, 1e-9)

	empty, err := ItemNutrition(models.MealPlanItem{Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, NutrientTotals{}, empty)
}

func TestRounded(t *testing.T) {
	got := NutrientTotals{Calories: 100, Protein: 1.234}.Rounded()
	assert.Equal(t, 1.23, got.Protein)
	assert.Equal(t, 100.0, got.Calories)
}

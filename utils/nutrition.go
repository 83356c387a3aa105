package utils

import (
	"fmt"
	"math"

	"nutriplan/models"
)

// NutrientTotals is the amount of each tracked nutrient actually consumed.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

func (t NutrientTotals) Add(o NutrientTotals) NutrientTotals {
	return NutrientTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
		Sugar:    t.Sugar + o.Sugar,
		Sodium:   t.Sodium + o.Sodium,
	}
}

func (t NutrientTotals) Scale(f float64) NutrientTotals {
	return NutrientTotals{
		Calories: t.Calories * f,
		Protein:  t.Protein * f,
		Carbs:    t.Carbs * f,
		Fat:      t.Fat * f,
		Fiber:    t.Fiber * f,
		Sugar:    t.Sugar * f,
		Sodium:   t.Sodium * f,
	}
}

// Rounded returns a copy with every field rounded to two decimals.
func (t NutrientTotals) Rounded() NutrientTotals {
	return NutrientTotals{
		Calories: round2(t.Calories),
		Protein:  round2(t.Protein),
		Carbs:    round2(t.Carbs),
		Fat:      round2(t.Fat),
		Fiber:    round2(t.Fiber),
		Sugar:    round2(t.Sugar),
		Sodium:   round2(t.Sodium),
	}
}

// PerServing is the food's own label: its nutrients for one serving.
func PerServing(f models.FoodItem) NutrientTotals {
	return NutrientTotals{
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
		Fiber:    f.Fiber,
		Sugar:    f.Sugar,
		Sodium:   f.Sodium,
	}
}

// Aggregate sums the nutrients of every ingredient line, scaled by
// quantity / servingSize. Lines are folded in input order. Any line with a
// non-positive serving size or quantity fails the whole call, and every such
// line is reported.
func Aggregate(ingredients []models.Ingredient) (NutrientTotals, error) {
	verr := &ValidationError{}
	for i, ing := range ingredients {
		if !(ing.Food.ServingSize > 0) || math.IsInf(ing.Food.ServingSize, 0) {
			verr.Add(fmt.Sprintf("ingredients[%d].food.servingSize", i), "must be positive")
		}
		if !(ing.Quantity > 0) || math.IsInf(ing.Quantity, 0) {
			verr.Add(fmt.Sprintf("ingredients[%d].quantity", i), "must be positive")
		}
	}
	if err := verr.Err(); err != nil {
		return NutrientTotals{}, err
	}

	var total NutrientTotals
	for _, ing := range ingredients {
		scale := ing.Quantity / ing.Food.ServingSize
		total = total.Add(PerServing(ing.Food).Scale(scale))
	}
	return total, nil
}

// RecipeNutrition is a recipe's whole-batch totals and the share of one serving.
type RecipeNutrition struct {
	RecipeID   string         `json:"recipeId"`
	Servings   int            `json:"servings"`
	Total      NutrientTotals `json:"total"`
	PerServing NutrientTotals `json:"perServing"`
	Flags      []NutrientFlag `json:"flags,omitempty"`
}

// AnalyzeRecipe aggregates the recipe's ingredients and divides by servings
// (treated as 1 when unset). Flags use adult defaults.
func AnalyzeRecipe(r models.Recipe) (*RecipeNutrition, error) {
	return AnalyzeRecipeFor(r, AssessmentContext{})
}

// AnalyzeRecipeFor is AnalyzeRecipe with flags scaled to the eater's age and
// calorie target.
func AnalyzeRecipeFor(r models.Recipe, actx AssessmentContext) (*RecipeNutrition, error) {
	total, err := Aggregate(r.Ingredients)
	if err != nil {
		return nil, err
	}
	servings := r.Servings
	if servings < 1 {
		servings = 1
	}
	per := total.Scale(1 / float64(servings))
	return &RecipeNutrition{
		RecipeID:   r.ID,
		Servings:   servings,
		Total:      total,
		PerServing: per,
		Flags:      AssessServingFor(per, actx),
	}, nil
}

// ItemNutrition is what one scheduled item contributes: quantity servings of
// its recipe. Items without a recipe contribute nothing.
func ItemNutrition(it models.MealPlanItem) (NutrientTotals, error) {
	if it.Recipe == nil {
		return NutrientTotals{}, nil
	}
	rn, err := AnalyzeRecipe(*it.Recipe)
	if err != nil {
		return NutrientTotals{}, err
	}
	q := it.Quantity
	if q <= 0 {
		q = 1
	}
	return rn.PerServing.Scale(q), nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

package models

// Request payloads accepted by the API. Numeric fields that are
// required are pointers so a missing value can be told apart
// from zero during validation.

type FoodItemRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Barcode     string   `json:"barcode"`
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
	Fiber       *float64 `json:"fiber"`
	Sugar       *float64 `json:"sugar"`
	Sodium      *float64 `json:"sodium"`
	ServingSize *float64 `json:"servingSize"`
	ServingUnit string   `json:"servingUnit"`
}

type IngredientRequest struct {
	FoodID   string  `json:"foodId"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type RecipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Instructions string              `json:"instructions"`
	PrepTime     *int                `json:"prepTime"`
	CookTime     *int                `json:"cookTime"`
	Servings     int                 `json:"servings"`
	Difficulty   string              `json:"difficulty"`
	Category     string              `json:"category"`
	ImageURL     string              `json:"imageUrl"`
	ImageBase64  string              `json:"imageBase64"` // data URI, uploaded to object storage
	IsPublic     bool                `json:"isPublic"`
	Ingredients  []IngredientRequest `json:"ingredients"`
}

type MealPlanItemRequest struct {
	Date     string   `json:"date"` // YYYY-MM-DD or RFC3339
	MealType string   `json:"mealType"`
	RecipeID string   `json:"recipeId"`
	Quantity *float64 `json:"quantity"` // defaults to 1
}

type MealPlanRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	StartDate   string                `json:"startDate"`
	EndDate     string                `json:"endDate"`
	Items       []MealPlanItemRequest `json:"items"`
}

type ProfileRequest struct {
	Name          string   `json:"name"`
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	ActivityLevel string   `json:"activityLevel"`
}

type GoalRequest struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

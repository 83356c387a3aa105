package utils

import (
	"fmt"
	"math"
	"strings"

	"nutriplan/models"
)

const (
	MinServingSize = 0.1
	MinQuantity    = 0.1
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func requireNonNegative(verr *ValidationError, field string, v *float64) float64 {
	switch {
	case v == nil:
		verr.Add(field, "is required")
		return 0
	case !finite(*v) || *v < 0:
		verr.Add(field, "must be zero or positive")
	}
	return *v
}

// FoodItemFromRequest checks every field and builds the food. The caller sets
// ownership.
func FoodItemFromRequest(req models.FoodItemRequest) (*models.FoodItem, error) {
	verr := &ValidationError{}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr.Add("name", "food name is required")
	}
	f := &models.FoodItem{
		Name:        name,
		Brand:       strings.TrimSpace(req.Brand),
		Barcode:     strings.TrimSpace(req.Barcode),
		Calories:    requireNonNegative(verr, "calories", req.Calories),
		Protein:     requireNonNegative(verr, "protein", req.Protein),
		Carbs:       requireNonNegative(verr, "carbs", req.Carbs),
		Fat:         requireNonNegative(verr, "fat", req.Fat),
		Fiber:       requireNonNegative(verr, "fiber", req.Fiber),
		Sugar:       requireNonNegative(verr, "sugar", req.Sugar),
		Sodium:      requireNonNegative(verr, "sodium", req.Sodium),
		ServingUnit: strings.TrimSpace(req.ServingUnit),
	}
	switch {
	case req.ServingSize == nil:
		verr.Add("servingSize", "is required")
	case !finite(*req.ServingSize) || *req.ServingSize < MinServingSize:
		verr.Add("servingSize", "must be at least %g", MinServingSize)
	default:
		f.ServingSize = *req.ServingSize
	}
	if f.ServingUnit == "" {
		verr.Add("servingUnit", "serving unit is required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	f.SearchIndex = strings.ToLower(strings.TrimSpace(f.Name + " " + f.Brand))
	return f, nil
}

// RecipeFromRequest checks every field and builds the recipe with its
// ingredient lines in request order. Foods are referenced by id only.
func RecipeFromRequest(req models.RecipeRequest) (*models.Recipe, error) {
	verr := &ValidationError{}
	r := &models.Recipe{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Instructions: strings.TrimSpace(req.Instructions),
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		IsPublic:     req.IsPublic,
	}
	if r.Name == "" {
		verr.Add("name", "recipe name is required")
	}
	if r.Instructions == "" {
		verr.Add("instructions", "instructions are required")
	}
	if r.PrepTime != nil && *r.PrepTime < 0 {
		verr.Add("prepTime", "must be zero or positive")
	}
	if r.CookTime != nil && *r.CookTime < 0 {
		verr.Add("cookTime", "must be zero or positive")
	}
	if r.Servings < 1 {
		verr.Add("servings", "servings must be at least 1")
	}
	if req.Difficulty != "" {
		r.Difficulty = models.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
		if !r.Difficulty.Valid() {
			verr.Add("difficulty", "must be one of easy, medium, hard")
		}
	}
	if req.Category != "" {
		cat, ok := models.ParseMealType(req.Category)
		if !ok {
			verr.Add("category", "must be one of breakfast, lunch, dinner, snack")
		}
		r.Category = cat
	}
	if r.ImageURL != "" && !strings.HasPrefix(r.ImageURL, "http://") && !strings.HasPrefix(r.ImageURL, "https://") {
		verr.Add("imageUrl", "must be an http(s) URL")
	}

	if len(req.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	}
	for i, in := range req.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if strings.TrimSpace(in.FoodID) == "" {
			verr.Add(field+".foodId", "food item is required")
		}
		if !finite(in.Quantity) || in.Quantity < MinQuantity {
			verr.Add(field+".quantity", "must be at least %g", MinQuantity)
		}
		if strings.TrimSpace(in.Unit) == "" {
			verr.Add(field+".unit", "unit is required")
		}
		r.Ingredients = append(r.Ingredients, models.Ingredient{
			FoodID:   strings.TrimSpace(in.FoodID),
			Quantity: in.Quantity,
			Unit:     strings.TrimSpace(in.Unit),
			Position: i,
		})
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// MealPlanFromRequest checks every field and builds the plan. Item dates are
// not checked against the plan window.
func MealPlanFromRequest(req models.MealPlanRequest) (*models.MealPlan, error) {
	verr := &ValidationError{}
	p := &models.MealPlan{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if p.Name == "" {
		verr.Add("name", "meal plan name is required")
	}
	var startOK, endOK bool
	if req.StartDate == "" {
		verr.Add("startDate", "is required")
	} else if d, err := ParseDate(req.StartDate); err != nil {
		verr.Add("startDate", "%v", err)
	} else {
		p.StartDate, startOK = CalendarDay(d), true
	}
	if req.EndDate == "" {
		verr.Add("endDate", "is required")
	} else if d, err := ParseDate(req.EndDate); err != nil {
		verr.Add("endDate", "%v", err)
	} else {
		p.EndDate, endOK = CalendarDay(d), true
	}
	if startOK && endOK && p.EndDate.Before(p.StartDate) {
		verr.Add("endDate", "must be on or after startDate")
	}

	if len(req.Items) == 0 {
		verr.Add("items", "at least one meal is required")
	}
	for i, in := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		item := models.MealPlanItem{Quantity: 1, Position: i}
		if d, err := ParseDate(in.Date); err != nil {
			verr.Add(field+".date", "%v", err)
		} else {
			item.Date = CalendarDay(d)
		}
		mt, ok := models.ParseMealType(in.MealType)
		if !ok {
			verr.Add(field+".mealType", "must be one of breakfast, lunch, dinner, snack")
		}
		item.MealType = mt
		if id := strings.TrimSpace(in.RecipeID); id != "" {
			item.RecipeID = &id
		}
		if in.Quantity != nil {
			if !finite(*in.Quantity) || *in.Quantity < MinQuantity {
				verr.Add(field+".quantity", "must be at least %g", MinQuantity)
			}
			item.Quantity = *in.Quantity
		}
		p.Items = append(p.Items, item)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

var (
	genders        = []string{"male", "female", "other"}
	activityLevels = []string{"sedentary", "lightly_active", "moderately_active", "very_active", "extremely_active"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ValidateProfile checks the optional profile attributes.
func ValidateProfile(req models.ProfileRequest) error {
	verr := &ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	}
	if req.Age != nil && (*req.Age < 1 || *req.Age > 120) {
		verr.Add("age", "must be between 1 and 120")
	}
	if req.Gender != "" && !oneOf(req.Gender, genders) {
		verr.Add("gender", "must be one of %s", strings.Join(genders, ", "))
	}
	if req.Height != nil && (!finite(*req.Height) || *req.Height < 50 || *req.Height > 300) {
		verr.Add("height", "must be between 50 and 300 cm")
	}
	if req.Weight != nil && (!finite(*req.Weight) || *req.Weight < 20 || *req.Weight > 500) {
		verr.Add("weight", "must be between 20 and 500 kg")
	}
	if req.ActivityLevel != "" && !oneOf(req.ActivityLevel, activityLevels) {
		verr.Add("activityLevel", "must be one of %s", strings.Join(activityLevels, ", "))
	}
	return verr.Err()
}

// ValidateGoal rejects negative or non-finite targets.
func ValidateGoal(req models.GoalRequest) error {
	verr := &ValidationError{}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"calories", req.Calories},
		{"protein", req.Protein},
		{"carbs", req.Carbs},
		{"fat", req.Fat},
		{"fiber", req.Fiber},
		{"sugar", req.Sugar},
		{"sodium", req.Sodium},
	} {
		if !finite(f.v) || f.v < 0 {
			verr.Add(f.name, "must be zero or positive")
		}
	}
	return verr.Err()
}

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedIngredient struct {
	Food     string  `yaml:"food"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
}

type seedRecipe struct {
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description"`
	Instructions string           `yaml:"instructions"`
	PrepTime     *int             `yaml:"prepTime"`
	CookTime     *int             `yaml:"cookTime"`
	Servings     int              `yaml:"servings"`
	Difficulty   string           `yaml:"difficulty"`
	Category     string           `yaml:"category"`
	IsPublic     bool             `yaml:"isPublic"`
	Ingredients  []seedIngredient `yaml:"ingredients"`
}

type seedUser struct {
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	Password      string   `yaml:"password"`
	Age           *int     `yaml:"age"`
	Gender        string   `yaml:"gender"`
	Height        *float64 `yaml:"height"`
	Weight        *float64 `yaml:"weight"`
	ActivityLevel string   `yaml:"activityLevel"`
}

type seedFood struct {
	Name        string  `yaml:"name"`
	Brand       string  `yaml:"brand"`
	Calories    float64 `yaml:"calories"`
	Protein     float64 `yaml:"protein"`
	Carbs       float64 `yaml:"carbs"`
	Fat         float64 `yaml:"fat"`
	Fiber       float64 `yaml:"fiber"`
	Sugar       float64 `yaml:"sugar"`
	Sodium      float64 `yaml:"sodium"`
	ServingSize float64 `yaml:"servingSize"`
	ServingUnit string  `yaml:"servingUnit"`
}

type SeedData struct {
	User    seedUser     `yaml:"user"`
	Foods   []seedFood   `yaml:"foods"`
	Recipes []seedRecipe `yaml:"recipes"`
}

func LoadSeedData() (*SeedData, error) {
	var d SeedData
	if err := yaml.Unmarshal(seedYAML, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &d, nil
}

// Seed loads the sample user, public foods and recipes. It does nothing when
// the sample user already exists.
func Seed(ctx context.Context, store *repository.Store) error {
	d, err := LoadSeedData()
	if err != nil {
		return err
	}

	_, err = store.FindUserByEmail(ctx, d.User.Email)
	switch {
	case err == nil:
		log.Printf("seed: %s already exists, skipping", d.User.Email)
		return nil
	case !errors.Is(err, utils.ErrNotFound):
		return err
	}

	hash, err := utils.HashPassword(d.User.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		Name:          d.User.Name,
		Email:         d.User.Email,
		Password:      hash,
		Age:           d.User.Age,
		Gender:        d.User.Gender,
		Height:        d.User.Height,
		Weight:        d.User.Weight,
		ActivityLevel: d.User.ActivityLevel,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}

	foods := make([]models.FoodItem, 0, len(d.Foods))
	for _, f := range d.Foods {
		req := models.FoodItemRequest{
			Name: f.Name, Brand: f.Brand,
			Calories: &f.Calories, Protein: &f.Protein, Carbs: &f.Carbs, Fat: &f.Fat,
			Fiber: &f.Fiber, Sugar: &f.Sugar, Sodium: &f.Sodium,
			ServingSize: &f.ServingSize, ServingUnit: f.ServingUnit,
		}
		food, err := utils.FoodItemFromRequest(req)
		if err != nil {
			return fmt.Errorf("seed food %s: %w", f.Name, err)
		}
		foods = append(foods, *food)
	}
	if err := store.CreateFoodItems(ctx, foods); err != nil {
		return err
	}
	byName := make(map[string]string, len(foods))
	for _, f := range foods {
		byName[f.Name] = f.ID
	}

	for _, sr := range d.Recipes {
		req := models.RecipeRequest{
			Name:         sr.Name,
			Description:  sr.Description,
			Instructions: sr.Instructions,
			PrepTime:     sr.PrepTime,
			CookTime:     sr.CookTime,
			Servings:     sr.Servings,
			Difficulty:   sr.Difficulty,
			Category:     sr.Category,
			IsPublic:     sr.IsPublic,
		}
		for _, in := range sr.Ingredients {
			id, ok := byName[in.Food]
			if !ok {
				return fmt.Errorf("seed recipe %s: unknown food %s", sr.Name, in.Food)
			}
			req.Ingredients = append(req.Ingredients, models.IngredientRequest{FoodID: id, Quantity: in.Quantity, Unit: in.Unit})
		}
		r, err := utils.RecipeFromRequest(req)
		if err != nil {
			return fmt.Errorf("seed recipe %s: %w", sr.Name, err)
		}
		r.CreatedBy = user.ID
		if err := store.CreateRecipe(ctx, r); err != nil {
			return err
		}
	}

	log.Printf("seed: created %s, %d foods, %d recipes", user.Email, len(foods), len(d.Recipes))
	return nil
}

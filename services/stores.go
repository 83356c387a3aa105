package services

import (
	"context"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// The stores below are the data access contract. repository.Store satisfies
// all of them.

type FoodStore interface {
	ListFoods(ctx context.Context, f repository.FoodFilter) ([]models.FoodItem, error)
	FindFoodsByIDs(ctx context.Context, ids []string) ([]models.FoodItem, error)
	CreateFoodItem(ctx context.Context, food *models.FoodItem) error
	CreateFoodItems(ctx context.Context, foods []models.FoodItem) error
}

type RecipeStore interface {
	ListRecipes(ctx context.Context, f repository.RecipeFilter) ([]models.Recipe, error)
	FindRecipe(ctx context.Context, id string) (*models.Recipe, error)
	FindRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, r *models.Recipe) error
}

type MealPlanStore interface {
	ListMealPlans(ctx context.Context, ownerID string, rng *repository.DateRange) ([]models.MealPlan, error)
	FindMealPlan(ctx context.Context, ownerID, id string) (*models.MealPlan, error)
	CreateMealPlan(ctx context.Context, p *models.MealPlan) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
}

type GoalStore interface {
	FindGoal(ctx context.Context, userID string) (*models.DailyGoal, error)
	SaveGoal(ctx context.Context, g *models.DailyGoal) error
}

type DeviceStore interface {
	FindDevice(ctx context.Context, userID, tokenHash string) (*models.UserDevice, error)
	SaveDevice(ctx context.Context, d *models.UserDevice) error
	ListEnabledDevices(ctx context.Context, userID string) ([]models.UserDevice, error)
	SetDevicesEnabled(ctx context.Context, userID string, enabled bool) error
}

var (
	_ FoodStore     = (*repository.Store)(nil)
	_ RecipeStore   = (*repository.Store)(nil)
	_ MealPlanStore = (*repository.Store)(nil)
	_ UserStore     = (*repository.Store)(nil)
	_ GoalStore     = (*repository.Store)(nil)
	_ DeviceStore   = (*repository.Store)(nil)
)

// requireUser fails before any domain logic when the identity is missing.
func requireUser(userID string) error {
	if userID == "" {
		return utils.ErrUnauthorized
	}
	return nil
}

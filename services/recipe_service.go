package services

import (
	"context"
	"errors"
	"fmt"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// ImageUploader stores a data-URI image and returns its public URL.
type ImageUploader interface {
	UploadBase64Image(ctx context.Context, dataURI, keyPrefix string) (string, error)
}

type RecipeService struct {
	recipes RecipeStore
	foods   FoodStore
	users   UserStore
	goals   GoalStore
	images  ImageUploader
	events  *EventBus
}

func NewRecipeService(recipes RecipeStore, foods FoodStore, users UserStore, goals GoalStore, images ImageUploader, events *EventBus) *RecipeService {
	return &RecipeService{recipes: recipes, foods: foods, users: users, goals: goals, images: images, events: events}
}

// List returns the recipes visible to the requester that match criteria.
func (s *RecipeService) List(ctx context.Context, userID string, criteria utils.SearchCriteria) ([]models.Recipe, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	candidates, err := s.recipes.ListRecipes(ctx, repository.RecipeFilter{
		RequesterID: userID,
		Text:        utils.Text(criteria),
		Category:    utils.Category(criteria),
	})
	if err != nil {
		return nil, err
	}
	return utils.FilterRecipes(candidates, criteria, userID), nil
}

// Get returns a recipe the requester may see. Private recipes of other users
// are reported as missing.
func (s *RecipeService) Get(ctx context.Context, userID, id string) (*models.Recipe, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	r, err := s.recipes.FindRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.VisibleTo(userID) {
		return nil, utils.NotFound("recipe", id)
	}
	return r, nil
}

// Create validates the request, checks every referenced food exists, uploads
// the optional image and stores the recipe with its ingredients.
func (s *RecipeService) Create(ctx context.Context, userID string, req models.RecipeRequest) (*models.Recipe, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	r, err := utils.RecipeFromRequest(req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ids = append(ids, ing.FoodID)
	}
	foods, err := s.foods.FindFoodsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(foods))
	for _, f := range foods {
		known[f.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, utils.NotFound("food", id)
		}
	}

	if req.ImageBase64 != "" {
		if _, _, _, err := utils.DecodeDataURI(req.ImageBase64); err != nil {
			verr := &utils.ValidationError{}
			verr.Add("imageBase64", "%v", err)
			return nil, verr
		}
		if s.images == nil {
			return nil, fmt.Errorf("image storage is not configured")
		}
		url, err := s.images.UploadBase64Image(ctx, req.ImageBase64, "recipes/"+userID)
		if err != nil {
			return nil, err
		}
		r.ImageURL = url
	}

	r.CreatedBy = userID
	if err := s.recipes.CreateRecipe(ctx, r); err != nil {
		return nil, err
	}
	s.events.Emit(ctx, userID, "recipe.created", fmt.Sprintf("Recipe %q saved", r.Name), r,
		map[string]string{"recipeId": r.ID})
	return r, nil
}

// Nutrition aggregates a visible recipe's ingredients. Flags follow the
// requester's age and daily calorie goal when those are known.
func (s *RecipeService) Nutrition(ctx context.Context, userID, id string) (*utils.RecipeNutrition, error) {
	r, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	actx, err := s.assessmentFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return utils.AnalyzeRecipeFor(*r, actx)
}

func (s *RecipeService) assessmentFor(ctx context.Context, userID string) (utils.AssessmentContext, error) {
	var actx utils.AssessmentContext
	if s.users != nil {
		u, err := s.users.FindUserByID(ctx, userID)
		switch {
		case err == nil:
			if u.Age != nil {
				actx.AgeYears = *u.Age
			}
		case !errors.Is(err, utils.ErrNotFound):
			return actx, err
		}
	}
	if s.goals != nil {
		g, err := s.goals.FindGoal(ctx, userID)
		switch {
		case err == nil:
			actx.CalorieTarget = g.Calories
		case !errors.Is(err, utils.ErrNotFound):
			return actx, err
		}
	}
	return actx, nil
}

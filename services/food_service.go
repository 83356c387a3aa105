package services

import (
	"context"
	"fmt"
	"strings"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// LabelDetector names what is in a photo.
type LabelDetector interface {
	DetectLabels(ctx context.Context, dataURI string) ([]string, error)
}

// FoodCatalog looks foods up in an external database.
type FoodCatalog interface {
	SearchFoods(ctx context.Context, query string) ([]models.FoodItem, error)
}

type FoodService struct {
	store   FoodStore
	labels  LabelDetector
	catalog FoodCatalog
}

func NewFoodService(store FoodStore, labels LabelDetector, catalog FoodCatalog) *FoodService {
	return &FoodService{store: store, labels: labels, catalog: catalog}
}

// Search returns the foods the requester may pick from, filtered and ordered
// by the search rules.
func (s *FoodService) Search(ctx context.Context, userID string, criteria utils.SearchCriteria, limit int) ([]models.FoodItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	candidates, err := s.store.ListFoods(ctx, repository.FoodFilter{
		RequesterID: userID,
		Text:        utils.Text(criteria),
	})
	if err != nil {
		return nil, err
	}
	return utils.FilterFoods(candidates, criteria, userID, limit), nil
}

// Create stores a custom food owned by the requester.
func (s *FoodService) Create(ctx context.Context, userID string, req models.FoodItemRequest) (*models.FoodItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	food, err := utils.FoodItemFromRequest(req)
	if err != nil {
		return nil, err
	}
	food.IsCustom = true
	food.CreatedBy = userID
	if err := s.store.CreateFoodItem(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

type RecognizeResult struct {
	Labels []string          `json:"labels"`
	Foods  []models.FoodItem `json:"foods"`
}

// Recognize labels the photo and searches local foods for each label, keeping
// the first hit per food.
func (s *FoodService) Recognize(ctx context.Context, userID, dataURI string) (*RecognizeResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if s.labels == nil {
		return nil, fmt.Errorf("image recognition is not configured")
	}
	labels, err := s.labels.DetectLabels(ctx, dataURI)
	if err != nil {
		return nil, err
	}

	out := &RecognizeResult{Labels: labels, Foods: []models.FoodItem{}}
	seen := map[string]bool{}
	for _, label := range labels {
		foods, err := s.Search(ctx, userID, utils.NewSearchCriteria(label, ""), 5)
		if err != nil {
			return nil, err
		}
		for _, f := range foods {
			if !seen[f.ID] {
				seen[f.ID] = true
				out.Foods = append(out.Foods, f)
			}
		}
	}
	return out, nil
}

// Import copies catalog matches for query into the requester's custom foods.
func (s *FoodService) Import(ctx context.Context, userID, query string) ([]models.FoodItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		verr := &utils.ValidationError{}
		verr.Add("q", "is required")
		return nil, verr
	}
	if s.catalog == nil {
		return nil, fmt.Errorf("food catalog is not configured")
	}

	found, err := s.catalog.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	foods := make([]models.FoodItem, 0, len(found))
	for _, f := range found {
		f.ID = ""
		f.IsCustom = true
		f.CreatedBy = userID
		f.SearchIndex = strings.ToLower(strings.TrimSpace(f.Name + " " + f.Brand))
		foods = append(foods, f)
	}
	if err := s.store.CreateFoodItems(ctx, foods); err != nil {
		return nil, err
	}
	return foods, nil
}

package repository

import (
	"context"

	"nutriplan/models"
)

type FoodFilter struct {
	RequesterID string
	Text        string
	Limit       int
}

// ListFoods narrows candidates in SQL the same way the search rules do so the
// in-memory filter works on a small set.
func (s *Store) ListFoods(ctx context.Context, f FoodFilter) ([]models.FoodItem, error) {
	q := s.db.WithContext(ctx).Model(&models.FoodItem{})
	if f.Text != "" {
		p := likePattern(f.Text)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\'`, p, p)
	} else {
		q = q.Where("is_custom = ? OR (is_custom = ? AND created_by = ?)", false, true, f.RequesterID)
	}
	q = q.Order("is_custom ASC").Order("name ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var foods []models.FoodItem
	if err := q.Find(&foods).Error; err != nil {
		return nil, storageErr("list foods", "food", "", err)
	}
	return foods, nil
}

func (s *Store) FindFoodsByIDs(ctx context.Context, ids []string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if len(ids) == 0 {
		return foods, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, storageErr("find foods", "food", "", err)
	}
	return foods, nil
}

func (s *Store) CreateFoodItem(ctx context.Context, food *models.FoodItem) error {
	return storageErr("create food", "food", food.ID, s.db.WithContext(ctx).Create(food).Error)
}

// CreateFoodItems inserts all foods or none.
func (s *Store) CreateFoodItems(ctx context.Context, foods []models.FoodItem) error {
	if len(foods) == 0 {
		return nil
	}
	return storageErr("create foods", "food", "", s.db.WithContext(ctx).Create(&foods).Error)
}

package repository

import (
	"context"
	"time"

	"nutriplan/models"
	"nutriplan/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateRange bounds a plan query; both ends are calendar days, inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (s *Store) hydratedPlans(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC").Order("position ASC") }).
		Preload("Items.Recipe").
		Preload("Items.Recipe.Ingredients", byPosition).
		Preload("Items.Recipe.Ingredients.Food")
}

// ListMealPlans returns the owner's plans, newest start first. The range is
// applied with a one-day margin so that the caller's calendar-day overlap
// test sees every candidate whatever time zone the dates were stored in.
func (s *Store) ListMealPlans(ctx context.Context, ownerID string, rng *DateRange) ([]models.MealPlan, error) {
	q := s.hydratedPlans(ctx).Where("created_by = ?", ownerID)
	if rng != nil {
		upper := utils.CalendarDay(rng.End).AddDate(0, 0, 2)
		lower := utils.CalendarDay(rng.Start).AddDate(0, 0, -1)
		q = q.Where("start_date < ? AND end_date >= ?", upper, lower)
	}

	var plans []models.MealPlan
	if err := q.Order("start_date DESC").Find(&plans).Error; err != nil {
		return nil, storageErr("list meal plans", "meal plan", "", err)
	}
	return plans, nil
}

func (s *Store) FindMealPlan(ctx context.Context, ownerID, id string) (*models.MealPlan, error) {
	var p models.MealPlan
	err := s.hydratedPlans(ctx).
		Where("id = ? AND created_by = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		return nil, storageErr("find meal plan", "meal plan", id, err)
	}
	return &p, nil
}

// CreateMealPlan writes the plan and its items in one transaction and reloads
// it hydrated.
func (s *Store) CreateMealPlan(ctx context.Context, p *models.MealPlan) error {
	items := p.Items
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].MealPlanID = p.ID
			items[i].Position = i
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Omit("Recipe").Create(&items).Error
	})
	if err != nil {
		return storageErr("create meal plan", "meal plan", p.ID, err)
	}

	created, err := s.FindMealPlan(ctx, p.CreatedBy, p.ID)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

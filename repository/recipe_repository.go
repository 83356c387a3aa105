package repository

import (
	"context"

	"nutriplan/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeFilter struct {
	RequesterID string
	Text        string
	Category    string
}

func (s *Store) hydratedRecipes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", byPosition).
		Preload("Ingredients.Food")
}

func (s *Store) ListRecipes(ctx context.Context, f RecipeFilter) ([]models.Recipe, error) {
	q := s.hydratedRecipes(ctx).
		Where("is_public = ? OR created_by = ?", true, f.RequesterID)
	if f.Text != "" {
		p := likePattern(f.Text)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, p, p)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var recipes []models.Recipe
	if err := q.Order("is_public ASC").Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, storageErr("list recipes", "recipe", "", err)
	}
	return recipes, nil
}

func (s *Store) FindRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var r models.Recipe
	if err := s.hydratedRecipes(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, storageErr("find recipe", "recipe", id, err)
	}
	return &r, nil
}

func (s *Store) FindRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if len(ids) == 0 {
		return recipes, nil
	}
	if err := s.hydratedRecipes(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, storageErr("find recipes", "recipe", "", err)
	}
	return recipes, nil
}

// CreateRecipe writes the recipe and its ingredient lines in one transaction
// and reloads it with foods attached.
func (s *Store) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	lines := r.Ingredients
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(r).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = r.ID
			lines[i].Position = i
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Omit("Food").Create(&lines).Error
	})
	if err != nil {
		return storageErr("create recipe", "recipe", r.ID, err)
	}

	created, err := s.FindRecipe(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *created
	return nil
}

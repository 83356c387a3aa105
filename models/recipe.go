package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Recipe struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string     `gorm:"not null;index" json:"name"`
	Description  string     `json:"description,omitempty"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	PrepTime     *int       `json:"prepTime,omitempty"` // minutes
	CookTime     *int       `json:"cookTime,omitempty"` // minutes
	Servings     int        `gorm:"not null;default:1" json:"servings"`
	Difficulty   Difficulty `gorm:"size:16" json:"difficulty,omitempty"`
	Category     MealType   `gorm:"size:16;index" json:"category,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	IsPublic     bool       `gorm:"index" json:"isPublic"`
	CreatedBy    string     `gorm:"type:varchar(36);index;not null" json:"createdBy"`

	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// VisibleTo reports whether userID may read the recipe.
func (r Recipe) VisibleTo(userID string) bool {
	return r.IsPublic || (r.CreatedBy != "" && r.CreatedBy == userID)
}

// Ingredient is one recipe line. Unit is free-form and is not checked against
// the food's serving unit.
type Ingredient struct {
	ID       string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID string   `gorm:"type:varchar(36);index;not null" json:"recipeId"`
	FoodID   string   `gorm:"type:varchar(36);index;not null" json:"foodId"`
	Food     FoodItem `gorm:"foreignKey:FoodID" json:"food"`
	Quantity float64  `gorm:"not null" json:"quantity"`
	Unit     string   `gorm:"not null" json:"unit"`
	Position int      `json:"-"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

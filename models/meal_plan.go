package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Rank is the slot's position in MealTypes, or len(MealTypes) when unknown.
func (m MealType) Rank() int {
	for i, t := range MealTypes {
		if t == m {
			return i
		}
	}
	return len(MealTypes)
}

func (m MealType) Valid() bool { return m.Rank() < len(MealTypes) }

func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

type MealPlan struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `gorm:"index;not null" json:"startDate"`
	EndDate     time.Time `gorm:"index;not null" json:"endDate"`
	CreatedBy   string    `gorm:"type:varchar(36);index;not null" json:"createdBy"`

	Items []MealPlanItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// MealPlanItem schedules an optional recipe at a date and meal slot. Quantity
// is the number of recipe servings.
type MealPlanItem struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MealPlanID string    `gorm:"type:varchar(36);index;not null" json:"mealPlanId"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	MealType   MealType  `gorm:"size:16;not null" json:"mealType"`
	RecipeID   *string   `gorm:"type:varchar(36);index" json:"recipeId,omitempty"`
	Recipe     *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Quantity   float64   `gorm:"not null;default:1" json:"quantity"`
	Position   int       `json:"-"`
}

func (i *MealPlanItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

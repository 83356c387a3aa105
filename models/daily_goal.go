package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyGoal holds each user's daily nutrient-intake targets.
type DailyGoal struct {
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID   string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	Calories float64 `json:"calories"` // e.g. 2200 kcal
	Protein  float64 `json:"protein"`  // e.g. 120 g
	Carbs    float64 `json:"carbs"`    // e.g. 275 g
	Fat      float64 `json:"fat"`      // e.g. 70 g
	Fiber    float64 `json:"fiber"`    // e.g. 30 g
	Sugar    float64 `json:"sugar"`    // e.g. 50 g
	Sodium   float64 `json:"sodium"`   // e.g. 2300 mg

	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *DailyGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

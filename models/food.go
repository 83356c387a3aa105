package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItem is a nutrient-labelled catalog entry. Nutrient values are per
// ServingSize units of ServingUnit.
type FoodItem struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Barcode     string  `gorm:"index" json:"barcode,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	Sodium      float64 `json:"sodium"` // mg
	ServingSize float64 `gorm:"not null" json:"servingSize"`
	ServingUnit string  `gorm:"not null" json:"servingUnit"`

	IsCustom    bool   `gorm:"index" json:"isCustom"`
	CreatedBy   string `gorm:"type:varchar(36);index" json:"createdBy,omitempty"` // empty for public foods
	SearchIndex string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// OwnedBy reports whether the food is a custom food created by userID.
func (f FoodItem) OwnedBy(userID string) bool {
	return f.IsCustom && f.CreatedBy != "" && f.CreatedBy == userID
}

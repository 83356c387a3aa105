package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email         string   `gorm:"uniqueIndex;not null" json:"email"`
	Password      string   `gorm:"not null" json:"-"`
	Name          string   `gorm:"not null" json:"name"`
	Age           *int     `json:"age,omitempty"`
	Gender        string   `gorm:"size:16" json:"gender,omitempty"`
	Height        *float64 `json:"height,omitempty"` // cm
	Weight        *float64 `json:"weight,omitempty"` // kg
	ActivityLevel string   `gorm:"size:32" json:"activityLevel,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

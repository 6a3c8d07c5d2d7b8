package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is a diary entry owned by a session.
type Meal struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	DateTime    time.Time `json:"date_time" gorm:"column:date_time;not null;index"`
	IsOnDiet    bool      `json:"is_on_diet" gorm:"column:is_on_diet;not null"`
	SessionID   string    `json:"session_id" gorm:"size:255;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

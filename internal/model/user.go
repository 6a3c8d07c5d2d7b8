package model

import "time"

// User is a registered diary owner. Its ID doubles as the session token
// carried in the sessionId cookie.
type User struct {
	ID        string    `json:"id" gorm:"size:255;primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

package models

import (
	"time"
)

// Board represents the database model
type Board struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:250;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// notes go away with their board
	Notes []Note `gorm:"constraint:OnDelete:CASCADE;" json:"notes"`
}

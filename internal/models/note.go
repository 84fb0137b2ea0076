package models

import (
	"time"
)

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Text      *string   `gorm:"type:text" json:"text"`
	Views     int       `gorm:"not null;default:0" json:"views"`
	BoardID   uint      `gorm:"not null;index" json:"board_id"`
	Board     *Board    `gorm:"constraint:OnDelete:CASCADE;" json:"board,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// SavedCard stores only tokenized card data; the PAN never reaches this
// service.
type SavedCard struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID      uint   `gorm:"index;column:user_id" json:"userId"`
	Last4       string `gorm:"size:4" json:"last4"`
	Brand       string `gorm:"size:32" json:"brand"`
	Token       string `gorm:"size:255" json:"-"`
	ExpiryMonth string `gorm:"size:2" json:"expiryMonth"`
	ExpiryYear  string `gorm:"size:4" json:"expiryYear"`
	IsDefault   bool   `gorm:"column:is_default;default:false" json:"isDefault"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

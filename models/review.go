package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   uint   `gorm:"index;column:user_id" json:"userId"`
	Rating   int    `json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`
	RoomType string `gorm:"column:room_type;size:64" json:"roomType,omitempty"`
	Approved bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;type:varchar(255)" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"size:32;default:guest" json:"role"`
	Phone    string `gorm:"size:32" json:"phone,omitempty"`

	// Password-reset flow: random hex token with a one-hour expiry.
	ResetToken       string     `gorm:"size:128" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

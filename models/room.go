package models

import (
	"time"

	"gorm.io/gorm"
)

// Housekeeping statuses. Any status may move to any other directly;
// the board is staff-driven, not a state machine.
const (
	HousekeepingClean        = "clean"
	HousekeepingDirty        = "dirty"
	HousekeepingInProgress   = "in_progress"
	HousekeepingOutOfService = "out_of_service"
)

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `json:"name" gorm:"uniqueIndex;type:varchar(255)"`
	Type string `json:"type" gorm:"size:64;index"` // Standard, Deluxe, Suite, Executive

	// Price is a whole-unit integer (e.g. Naira), no minor units.
	Price       int    `json:"price"`
	Guests      int    `json:"guests" gorm:"default:2"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"type:varchar(512)"`

	HousekeepingStatus string     `json:"housekeepingStatus" gorm:"column:housekeeping_status;size:32;default:clean"`
	Priority           string     `json:"priority" gorm:"size:16;default:normal"`
	AssignedTo         string     `json:"assignedTo" gorm:"column:assigned_to;size:255"`
	LastCleaned        *time.Time `json:"lastCleaned,omitempty" gorm:"column:last_cleaned"`
}

func ValidHousekeepingStatus(s string) bool {
	switch s {
	case HousekeepingClean, HousekeepingDirty, HousekeepingInProgress, HousekeepingOutOfService:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	return p == PriorityNormal || p == PriorityHigh
}

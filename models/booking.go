package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Cancelled and Checked-Out are terminal.
const (
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked-in"
	BookingCheckedOut = "checked-out"
	BookingCancelled  = "cancelled"
)

// DateLayout is the calendar-date format used for check-in/check-out.
// Lexicographic comparison of these strings matches chronological order,
// so overlap queries run directly against the stored values.
const DateLayout = "2006-01-02"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;column:user_id" json:"userId"`
	RoomID uint `gorm:"index;column:room_id" json:"roomId"`

	// RoomType is a snapshot of the room's label at creation time so the
	// booking still displays correctly after a room rename or delete.
	RoomType string `gorm:"column:room_type;size:64" json:"roomType"`

	CheckIn  string `gorm:"column:check_in;size:10;index:idx_bookings_dates" json:"checkIn"`
	CheckOut string `gorm:"column:check_out;size:10;index:idx_bookings_dates" json:"checkOut"`
	Guests   int    `gorm:"default:1" json:"guests"`
	Status   string `gorm:"size:32;index;default:confirmed" json:"status"`

	RealCheckInTime  *time.Time `gorm:"column:real_check_in_time" json:"realCheckInTime,omitempty"`
	RealCheckOutTime *time.Time `gorm:"column:real_check_out_time" json:"realCheckOutTime,omitempty"`

	// Draft guest names collected by the reservation form; the roster is
	// display-only and never constrains the Guests count.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// Terminal reports whether no further transition is permitted.
func (b *Booking) Terminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCheckedOut
}

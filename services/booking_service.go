package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"guesthouse-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService is the reservation engine: it validates booking requests,
// runs the availability check, owns the booking status state machine and
// notifies housekeeping on check-out.
type BookingService struct {
	DB           *gorm.DB
	Rooms        *RoomService
	Housekeeping *HousekeepingService

	// StrictCheckout requires a booking to be checked-in before check-out.
	// Off by default: the front desk is allowed to check out a confirmed
	// booking whose arrival was never registered.
	StrictCheckout bool

	// One mutex per room id. The availability read and the booking insert
	// must be serialized per room or two concurrent requests can both pass
	// the overlap check and double-book.
	roomLocks sync.Map
}

func NewBookingService(db *gorm.DB, rooms *RoomService, hk *HousekeepingService) *BookingService {
	return &BookingService{DB: db, Rooms: rooms, Housekeeping: hk}
}

func (s *BookingService) lockRoom(roomID uint) *sync.Mutex {
	mu, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AccompanyingGuest is a display-only roster entry collected by the
// reservation form.
type AccompanyingGuest struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"` // Adult or Child
}

// CreateBookingInput carries a validated-shape booking request. RoomType
// matches a room by exact name or type label.
type CreateBookingInput struct {
	UserID    uint
	RoomType  string
	CheckIn   string
	CheckOut  string
	Guests    int
	GuestList []AccompanyingGuest
}

func parseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return "", err
	}
	// Store the formatted value, not the raw input: the overlap query
	// compares these strings lexicographically.
	return t.Format(models.DateLayout), nil
}

// IsAvailable reports whether the room has no non-cancelled booking
// overlapping [checkIn, checkOut). Half-open intervals: a booking ending
// on the day another starts does not overlap. Returns ErrNotFound when
// the room id does not resolve.
func (s *BookingService) IsAvailable(roomID uint, checkIn, checkOut string) (bool, error) {
	return s.isAvailable(s.DB, roomID, checkIn, checkOut)
}

func (s *BookingService) isAvailable(db *gorm.DB, roomID uint, checkIn, checkOut string) (bool, error) {
	var exists int64
	err := db.Model(&models.Room{}).Where("id = ?", roomID).Count(&exists).Error
	if err != nil {
		return false, fmt.Errorf("failed to check room %d: %w", roomID, err)
	}
	if exists == 0 {
		return false, ErrNotFound
	}

	var overlapping int64
	err = db.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingCancelled).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&overlapping).Error
	if err != nil {
		return false, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return overlapping == 0, nil
}

// Create validates the request, resolves the room, and commits the booking
// atomically with respect to other requests for the same room.
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(input.RoomType) == "" ||
		strings.TrimSpace(input.CheckIn) == "" ||
		strings.TrimSpace(input.CheckOut) == "" {
		return nil, fmt.Errorf("%w: room type, check-in and check-out are required", ErrValidation)
	}

	checkIn, err := parseDate(input.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: check-in must be a YYYY-MM-DD date", ErrValidation)
	}
	checkOut, err := parseDate(input.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: check-out must be a YYYY-MM-DD date", ErrValidation)
	}

	if checkOut <= checkIn {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}

	// Compare at midnight granularity: same-day check-in is fine.
	today := time.Now().Format(models.DateLayout)
	if checkIn < today {
		return nil, fmt.Errorf("%w: check-in cannot be in the past", ErrValidation)
	}

	room, err := s.Rooms.FindByNameOrType(input.RoomType)
	if err != nil {
		return nil, err
	}

	guests := input.Guests
	if guests <= 0 {
		guests = 1
	}
	if room.Guests > 0 && guests > room.Guests {
		return nil, fmt.Errorf("%w: room sleeps at most %d guest(s)", ErrValidation, room.Guests)
	}

	var roster datatypes.JSON
	if len(input.GuestList) > 0 {
		raw, mErr := json.Marshal(normalizeGuestList(input.GuestList))
		if mErr != nil {
			return nil, fmt.Errorf("failed to encode guest list: %w", mErr)
		}
		roster = datatypes.JSON(raw)
	}

	// Serialization point: hold the room's lock across the overlap check
	// and the insert so concurrent requests cannot both pass the check.
	mu := s.lockRoom(room.ID)
	mu.Lock()
	defer mu.Unlock()

	booking := &models.Booking{
		UserID:             input.UserID,
		RoomID:             room.ID,
		RoomType:           strings.TrimSpace(input.RoomType),
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Guests:             guests,
		Status:             models.BookingConfirmed,
		AccompanyingGuests: roster,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		available, aErr := s.isAvailable(tx, room.ID, checkIn, checkOut)
		if aErr != nil {
			return aErr
		}
		if !available {
			return ErrRoomUnavailable
		}
		return tx.Create(booking).Error
	})
	if txErr != nil {
		if errors.Is(txErr, ErrRoomUnavailable) || errors.Is(txErr, ErrNotFound) {
			return nil, txErr
		}
		return nil, fmt.Errorf("failed to create booking: %w", txErr)
	}

	if err := s.DB.Preload("Room").First(booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", booking.ID, err)
	}
	return booking, nil
}

func normalizeGuestList(list []AccompanyingGuest) []AccompanyingGuest {
	out := make([]AccompanyingGuest, 0, len(list))
	for _, g := range list {
		g.FullName = strings.TrimSpace(g.FullName)
		if g.FullName == "" {
			continue
		}
		if strings.TrimSpace(g.Type) == "" {
			g.Type = "Adult"
		}
		out = append(out, g)
	}
	return out
}

// Actor identifies who is requesting a transition.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) admin() bool {
	return a.Role == models.RoleAdmin
}

// GetByID loads a booking with its room. Non-admin callers only see their
// own bookings.
func (s *BookingService) GetByID(id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !actor.admin() && booking.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) load(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return &booking, nil
}

// List returns all bookings for admins (optionally narrowed to one user)
// and the caller's own bookings otherwise.
func (s *BookingService) List(actor Actor, userID uint) ([]models.Booking, error) {
	q := s.DB.Preload("Room").Preload("User").Order("created_at DESC")
	if actor.admin() {
		if userID != 0 {
			q = q.Where("user_id = ?", userID)
		}
	} else {
		q = q.Where("user_id = ?", actor.UserID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Cancel moves a confirmed booking to cancelled. Permitted to the owning
// user or an admin. A checked-in guest cannot be retroactively cancelled.
func (s *BookingService) Cancel(id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !actor.admin() && booking.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, booking.Status)
	}

	if err := s.DB.Model(booking).Update("status", models.BookingCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}
	booking.Status = models.BookingCancelled
	return booking, nil
}

// CheckIn registers the guest's arrival. Staff only; confirmed bookings
// only.
func (s *BookingService) CheckIn(id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !actor.admin() {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: cannot check in a %s booking", ErrInvalidTransition, booking.Status)
	}

	now := time.Now()
	err = s.DB.Model(booking).Updates(map[string]interface{}{
		"status":             models.BookingCheckedIn,
		"real_check_in_time": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check in booking %d: %w", id, err)
	}
	booking.Status = models.BookingCheckedIn
	booking.RealCheckInTime = &now
	return booking, nil
}

// CheckOut registers the guest's departure and marks the room dirty for
// housekeeping, both in one transaction. Staff only. With StrictCheckout
// off, a confirmed booking may be checked out directly.
func (s *BookingService) CheckOut(id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !actor.admin() {
		return nil, ErrForbidden
	}
	if booking.Terminal() {
		return nil, fmt.Errorf("%w: cannot check out a %s booking", ErrInvalidTransition, booking.Status)
	}
	if s.StrictCheckout && booking.Status != models.BookingCheckedIn {
		return nil, fmt.Errorf("%w: booking must be checked in before check-out", ErrInvalidTransition)
	}

	now := time.Now()
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(booking).Updates(map[string]interface{}{
			"status":              models.BookingCheckedOut,
			"real_check_out_time": now,
		}).Error; err != nil {
			return err
		}
		return s.Housekeeping.markDirty(tx, booking.RoomID)
	})
	if txErr != nil {
		return nil, fmt.Errorf("failed to check out booking %d: %w", id, txErr)
	}
	booking.Status = models.BookingCheckedOut
	booking.RealCheckOutTime = &now
	return booking, nil
}

// Update dispatches a PATCH {status} request to the matching transition.
func (s *BookingService) Update(id uint, actor Actor, targetStatus string) (*models.Booking, error) {
	switch targetStatus {
	case models.BookingCancelled:
		return s.Cancel(id, actor)
	case models.BookingCheckedIn:
		return s.CheckIn(id, actor)
	case models.BookingCheckedOut:
		return s.CheckOut(id, actor)
	default:
		return nil, fmt.Errorf("%w: unknown target status %q", ErrValidation, targetStatus)
	}
}

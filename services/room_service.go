package services

import (
	"errors"
	"fmt"
	"strings"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// RoomService wraps *gorm.DB for the room catalog.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomFilter narrows List results. Zero values mean "no constraint";
// price bounds and MinGuests are inclusive.
type RoomFilter struct {
	Type      string
	MinPrice  int
	MaxPrice  int
	MinGuests int
}

// FindByNameOrType resolves a room by exact name or type label. Guests
// book by label ("Deluxe King Suite" or just "Deluxe"), not by id.
func (s *RoomService) FindByNameOrType(identifier string) (*models.Room, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: room identifier is required", ErrValidation)
	}

	var room models.Room
	err := s.DB.Where("name = ? OR type = ?", identifier, identifier).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRoom
		}
		return nil, fmt.Errorf("failed to resolve room %q: %w", identifier, err)
	}
	return &room, nil
}

func (s *RoomService) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) List(filter RoomFilter) ([]models.Room, error) {
	q := s.DB.Model(&models.Room{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.MinGuests > 0 {
		q = q.Where("guests >= ?", filter.MinGuests)
	}

	var rooms []models.Room
	if err := q.Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Create(room *models.Room) error {
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return fmt.Errorf("%w: room name is required", ErrValidation)
	}
	if room.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if room.Guests <= 0 {
		room.Guests = 2
	}
	if room.HousekeepingStatus == "" {
		room.HousekeepingStatus = models.HousekeepingClean
	}
	if room.Priority == "" {
		room.Priority = models.PriorityNormal
	}

	var dup int64
	if err := s.DB.Model(&models.Room{}).Where("name = ?", room.Name).Count(&dup).Error; err != nil {
		return fmt.Errorf("failed to check room name %q: %w", room.Name, err)
	}
	if dup > 0 {
		return fmt.Errorf("%w: a room named %q already exists", ErrConflict, room.Name)
	}

	return s.DB.Create(room).Error
}

// Update applies a partial field map. Identity and timestamps are stripped
// so a client payload cannot rewrite them.
func (s *RoomService) Update(id uint, fields map[string]interface{}) (*models.Room, error) {
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	delete(fields, "deleted_at")

	if v, ok := fields["housekeepingStatus"]; ok {
		fields["housekeeping_status"] = v
		delete(fields, "housekeepingStatus")
	}
	if v, ok := fields["assignedTo"]; ok {
		fields["assigned_to"] = v
		delete(fields, "assignedTo")
	}
	if v, ok := fields["lastCleaned"]; ok {
		fields["last_cleaned"] = v
		delete(fields, "lastCleaned")
	}

	room, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return s.FindByID(id)
}

// Delete removes a room unless a live booking still references it.
// Cancelled and checked-out bookings keep their denormalized room-type
// snapshot, so they do not block deletion.
func (s *RoomService) Delete(id uint) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	var active int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status NOT IN ?", id,
			[]string{models.BookingCancelled, models.BookingCheckedOut}).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to count active bookings for room %d: %w", id, err)
	}
	if active > 0 {
		return fmt.Errorf("%w: room has %d active booking(s)", ErrConflict, active)
	}

	return s.DB.Delete(&models.Room{}, id).Error
}

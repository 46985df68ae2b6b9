package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// HousekeepingService tracks room cleanliness. Statuses form no state
// machine: staff move rooms between clean, dirty, in_progress and
// out_of_service freely, and last-write-wins is acceptable.
type HousekeepingService struct {
	DB *gorm.DB
}

func NewHousekeepingService(db *gorm.DB) *HousekeepingService {
	return &HousekeepingService{DB: db}
}

// MarkDirty flags a room for cleaning after check-out. Idempotent.
func (s *HousekeepingService) MarkDirty(roomID uint) error {
	return s.markDirty(s.DB, roomID)
}

func (s *HousekeepingService) markDirty(db *gorm.DB, roomID uint) error {
	result := db.Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("housekeeping_status", models.HousekeepingDirty)
	if result.Error != nil {
		return fmt.Errorf("failed to mark room %d dirty: %w", roomID, result.Error)
	}
	if result.RowsAffected == 0 {
		// Already dirty also reports zero rows on some drivers, so only
		// a missing room is an error worth raising.
		var count int64
		if err := db.Model(&models.Room{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// SetStatus applies a staff status change. Moving a room to clean stamps
// last_cleaned, matching the housekeeping board's Clean action.
func (s *HousekeepingService) SetStatus(roomID uint, status string) (*models.Room, error) {
	if !models.ValidHousekeepingStatus(status) {
		return nil, fmt.Errorf("%w: unknown housekeeping status %q", ErrValidation, status)
	}

	fields := map[string]interface{}{"housekeeping_status": status}
	if status == models.HousekeepingClean {
		fields["last_cleaned"] = time.Now()
	}
	return s.apply(roomID, fields)
}

func (s *HousekeepingService) AssignStaff(roomID uint, name string) (*models.Room, error) {
	return s.apply(roomID, map[string]interface{}{"assigned_to": strings.TrimSpace(name)})
}

func (s *HousekeepingService) SetPriority(roomID uint, level string) (*models.Room, error) {
	if !models.ValidPriority(level) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, level)
	}
	return s.apply(roomID, map[string]interface{}{"priority": level})
}

func (s *HousekeepingService) apply(roomID uint, fields map[string]interface{}) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if err := s.DB.Model(&room).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d housekeeping: %w", roomID, err)
	}
	return &room, nil
}

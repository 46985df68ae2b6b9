package services

import (
	"errors"
	"fmt"
	"strings"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// List returns approved reviews; includeAll additionally returns pending
// ones for the admin moderation screen.
func (s *ReviewService) List(includeAll bool) ([]models.Review, error) {
	q := s.DB.Preload("User").Order("created_at DESC")
	if !includeAll {
		q = q.Where("approved = ?", true)
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Create stores a new review. Reviews start unapproved and only show
// publicly after moderation.
func (s *ReviewService) Create(userID uint, rating int, comment, roomType string) (*models.Review, error) {
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 || comment == "" {
		return nil, fmt.Errorf("%w: rating (1-5) and comment are required", ErrValidation)
	}

	review := &models.Review{
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
		RoomType: strings.TrimSpace(roomType),
		Approved: false,
	}
	if err := s.DB.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// SetApproved flips the moderation flag.
func (s *ReviewService) SetApproved(id uint, approved bool) (*models.Review, error) {
	review, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(review).Update("approved", approved).Error; err != nil {
		return nil, fmt.Errorf("failed to update review %d: %w", id, err)
	}
	review.Approved = approved
	return review, nil
}

func (s *ReviewService) Delete(id uint) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	return s.DB.Delete(&models.Review{}, id).Error
}

func (s *ReviewService) get(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load review %d: %w", id, err)
	}
	return &review, nil
}

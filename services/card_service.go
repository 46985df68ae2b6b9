package services

import (
	"errors"
	"fmt"
	"strings"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// CardService manages a user's saved payment cards. Everything is scoped
// to the owning user; there are no cross-user operations.
type CardService struct {
	DB *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{DB: db}
}

func (s *CardService) List(userID uint) ([]models.SavedCard, error) {
	var cards []models.SavedCard
	if err := s.DB.Where("user_id = ?", userID).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Add saves a tokenized card. The first card a user saves becomes their
// default.
func (s *CardService) Add(userID uint, card models.SavedCard) (*models.SavedCard, error) {
	if strings.TrimSpace(card.Last4) == "" || strings.TrimSpace(card.Token) == "" {
		return nil, fmt.Errorf("%w: last4 and token are required", ErrValidation)
	}

	var count int64
	if err := s.DB.Model(&models.SavedCard{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	card.ID = 0
	card.UserID = userID
	card.IsDefault = count == 0
	if err := s.DB.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return &card, nil
}

func (s *CardService) Delete(userID, cardID uint) error {
	card, err := s.own(userID, cardID)
	if err != nil {
		return err
	}
	return s.DB.Delete(card).Error
}

// SetDefault makes the card the user's default and clears the previous
// one.
func (s *CardService) SetDefault(userID, cardID uint) (*models.SavedCard, error) {
	card, err := s.own(userID, cardID)
	if err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SavedCard{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(card).Update("is_default", true).Error
	})
	if txErr != nil {
		return nil, fmt.Errorf("failed to set default card: %w", txErr)
	}
	card.IsDefault = true
	return card, nil
}

func (s *CardService) own(userID, cardID uint) (*models.SavedCard, error) {
	var card models.SavedCard
	err := s.DB.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load card %d: %w", cardID, err)
	}
	return &card, nil
}

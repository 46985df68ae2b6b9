package services

import (
	"testing"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCardDefaultRotation(t *testing.T) {
	db, _ := setupBookingEnv(t, "cards_default")
	cards := NewCardService(db)

	_, err := cards.Add(1, models.SavedCard{Last4: "4242", Token: ""})
	assert.ErrorIs(t, err, ErrValidation)

	first, err := cards.Add(1, models.SavedCard{Last4: "4242", Brand: "Visa", Token: "tok_1"})
	assert.NoError(t, err)
	assert.True(t, first.IsDefault) // first card becomes default

	second, err := cards.Add(1, models.SavedCard{Last4: "1881", Brand: "MasterCard", Token: "tok_2"})
	assert.NoError(t, err)
	assert.False(t, second.IsDefault)

	promoted, err := cards.SetDefault(1, second.ID)
	assert.NoError(t, err)
	assert.True(t, promoted.IsDefault)

	list, err := cards.List(1)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	for _, card := range list {
		assert.Equal(t, card.ID == second.ID, card.IsDefault)
	}
}

func TestCardOwnership(t *testing.T) {
	db, _ := setupBookingEnv(t, "cards_ownership")
	cards := NewCardService(db)

	mine, err := cards.Add(1, models.SavedCard{Last4: "4242", Brand: "Visa", Token: "tok_1"})
	assert.NoError(t, err)

	// Another user cannot see, delete or promote it.
	theirs, err := cards.List(2)
	assert.NoError(t, err)
	assert.Empty(t, theirs)

	assert.ErrorIs(t, cards.Delete(2, mine.ID), ErrNotFound)
	_, err = cards.SetDefault(2, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, cards.Delete(1, mine.ID))
}

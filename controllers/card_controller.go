package controllers

import (
	"net/http"
	"strconv"

	"guesthouse-backend/middleware"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type CardController struct {
	Cards *services.CardService
}

func NewCardController(cards *services.CardService) *CardController {
	return &CardController{Cards: cards}
}

type AddCardRequest struct {
	Last4       string `json:"last4" binding:"required"`
	Brand       string `json:"brand"`
	Token       string `json:"token" binding:"required"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
}

// GetCards (GET /api/cards) — the caller's saved cards.
func (cc *CardController) GetCards(c *gin.Context) {
	userID, _, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	cards, err := cc.Cards.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cards)
}

// AddCard (POST /api/cards)
func (cc *CardController) AddCard(c *gin.Context) {
	userID, _, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "last4 and token are required")
		return
	}

	card, err := cc.Cards.Add(userID, models.SavedCard{
		Last4:       req.Last4,
		Brand:       req.Brand,
		Token:       req.Token,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, card)
}

// DeleteCard (DELETE /api/cards/:id) — own cards only.
func (cc *CardController) DeleteCard(c *gin.Context) {
	userID, _, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := cardParam(c)
	if !ok {
		return
	}

	if err := cc.Cards.Delete(userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "card deleted"})
}

// SetDefaultCard (POST /api/cards/:id/default)
func (cc *CardController) SetDefaultCard(c *gin.Context) {
	userID, _, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := cardParam(c)
	if !ok {
		return
	}

	card, err := cc.Cards.SetDefault(userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, card)
}

func cardParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid card id")
		return 0, false
	}
	return uint(id), true
}

package controllers

import (
	"net/http"
	"strconv"

	"guesthouse-backend/middleware"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// ---------------------------
// Payload / DTOs
// ---------------------------

type GuestEntry struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
}

type CreateBookingRequest struct {
	RoomType  string       `json:"roomType" binding:"required"`
	CheckIn   string       `json:"checkIn" binding:"required"`
	CheckOut  string       `json:"checkOut" binding:"required"`
	Guests    int          `json:"guests"`
	GuestList []GuestEntry `json:"guestList,omitempty"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

func actorFrom(c *gin.Context) (services.Actor, bool) {
	userID, role, ok := middleware.CurrentActor(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Role: role}, true
}

func bookingParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

// GetBookings (GET /api/bookings) — admins see every booking, optionally
// narrowed with ?userId=, guests see their own.
func (bc *BookingController) GetBookings(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var userID uint
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = uint(parsed)
	}

	bookings, err := bc.Bookings.List(actor, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// CreateBooking (POST /api/bookings) — 201 on success, 400 on validation,
// 409 when the dates conflict with an existing booking.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room type, check-in and check-out are required")
		return
	}

	guestList := make([]services.AccompanyingGuest, 0, len(req.GuestList))
	for _, g := range req.GuestList {
		guestList = append(guestList, services.AccompanyingGuest{FullName: g.FullName, Type: g.Type})
	}

	booking, err := bc.Bookings.Create(services.CreateBookingInput{
		UserID:    actor.UserID,
		RoomType:  req.RoomType,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		GuestList: guestList,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookingDetails (GET /api/bookings/:id)
func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := bookingParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.GetByID(id, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateBooking (PATCH /api/bookings/:id) — transition request carrying
// the target status.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := bookingParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "target status is required")
		return
	}

	booking, err := bc.Bookings.Update(id, actor, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CheckIn (POST /api/bookings/:id/check-in) — staff action, no body.
func (bc *BookingController) CheckIn(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := bookingParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.CheckIn(id, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CheckOut (POST /api/bookings/:id/check-out) — staff action; also flags
// the room dirty for housekeeping.
func (bc *BookingController) CheckOut(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := bookingParam(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.CheckOut(id, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type RoomController struct {
	Rooms    *services.RoomService
	Bookings *services.BookingService
}

func NewRoomController(rooms *services.RoomService, bookings *services.BookingService) *RoomController {
	return &RoomController{Rooms: rooms, Bookings: bookings}
}

// GetRooms (GET /api/rooms) — optional filters: type, minPrice, maxPrice,
// guests.
func (rc *RoomController) GetRooms(c *gin.Context) {
	filter := services.RoomFilter{Type: c.Query("type")}

	var bad bool
	filter.MinPrice = intQuery(c, "minPrice", &bad)
	filter.MaxPrice = intQuery(c, "maxPrice", &bad)
	filter.MinGuests = intQuery(c, "guests", &bad)
	if bad {
		utils.JSONError(c, http.StatusBadRequest, "price and guest filters must be integers")
		return
	}

	rooms, err := rc.Rooms.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func intQuery(c *gin.Context, name string, bad *bool) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		*bad = true
		return 0
	}
	return v
}

// GetAvailability (GET /api/rooms/availability) — public availability
// probe for a room label and date range.
func (rc *RoomController) GetAvailability(c *gin.Context) {
	roomType := c.Query("roomType")
	checkIn := c.Query("checkIn")
	checkOut := c.Query("checkOut")
	if roomType == "" || checkIn == "" || checkOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomType, checkIn and checkOut are required")
		return
	}

	room, err := rc.Rooms.FindByNameOrType(roomType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRoom) {
			utils.JSONSuccess(c, http.StatusOK, gin.H{"available": false, "message": "Room type not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	available, err := rc.Bookings.IsAvailable(room.ID, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"available": available})
}

// GetRoom (GET /api/rooms/:id)
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := roomParam(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.FindByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom (POST /api/rooms) — admin only.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := rc.Rooms.Create(&room); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			utils.JSONError(c, http.StatusConflict, "a room with this name already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom (PUT/PATCH /api/rooms/:id) — admin only, partial update.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := roomParam(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := rc.Rooms.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom (DELETE /api/rooms/:id) — admin only; refused while active
// bookings still reference the room.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := roomParam(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

func roomParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

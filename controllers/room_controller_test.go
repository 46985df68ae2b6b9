package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"guesthouse-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRoomListFilters(t *testing.T) {
	env := setupEnv(t, "ctl_room_filters")
	env.seedRoom(t, "Standard Double Room", "Standard")
	deluxe := env.seedRoom(t, "Deluxe King Suite", "Deluxe")
	deluxe.Price = 120000
	deluxe.Guests = 3
	assert.NoError(t, env.db.Save(deluxe).Error)

	var response struct {
		Data []models.Room `json:"data"`
	}

	w := env.request(t, http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)

	w = env.request(t, http.MethodGet, "/api/rooms?type=Deluxe", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Deluxe King Suite", response.Data[0].Name)

	w = env.request(t, http.MethodGet, "/api/rooms?maxPrice=100000", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Standard Double Room", response.Data[0].Name)

	w = env.request(t, http.MethodGet, "/api/rooms?guests=3", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Deluxe King Suite", response.Data[0].Name)
}

func TestRoomAdminGuards(t *testing.T) {
	env := setupEnv(t, "ctl_room_guards")

	payload := map[string]interface{}{
		"name":   "Executive Studio",
		"type":   "Executive",
		"price":  150000,
		"guests": 2,
	}

	w := env.request(t, http.MethodPost, "/api/rooms", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/rooms", env.guestToken, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, "/api/rooms", env.adminToken, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	roomID := uint(decodeData(t, w)["id"].(float64))

	// Duplicate name -> 409.
	w = env.request(t, http.MethodPost, "/api/rooms", env.adminToken, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing name -> 400.
	w = env.request(t, http.MethodPost, "/api/rooms", env.adminToken, map[string]interface{}{
		"type": "Executive", "price": 150000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/rooms/%d", roomID),
		env.adminToken, map[string]interface{}{"price": 160000})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(160000), decodeData(t, w)["price"])

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), env.guestToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoomDeleteBlockedByBooking(t *testing.T) {
	env := setupEnv(t, "ctl_room_delete")
	room := env.seedRoom(t, "Family Apartment", "Suite")

	w := env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Suite",
		"checkIn":  futureDay(1),
		"checkOut": futureDay(3),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := uint(decodeData(t, w)["id"].(float64))

	deleteURL := fmt.Sprintf("/api/rooms/%d", room.ID)

	w = env.request(t, http.MethodDelete, deleteURL, env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", bookingID),
		env.guestToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, deleteURL, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, deleteURL, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHousekeepingEndpoint(t *testing.T) {
	env := setupEnv(t, "ctl_housekeeping")
	room := env.seedRoom(t, "Standard Double Room", "Standard")

	url := fmt.Sprintf("/api/rooms/%d/housekeeping", room.ID)

	w := env.request(t, http.MethodPatch, url, env.guestToken, map[string]string{"status": "dirty"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPatch, url, env.adminToken, map[string]string{"status": "dirty"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dirty", decodeData(t, w)["housekeepingStatus"])

	w = env.request(t, http.MethodPatch, url, env.adminToken, map[string]interface{}{
		"status": "in_progress", "assignedTo": "Maria", "priority": "high",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "in_progress", data["housekeepingStatus"])
	assert.Equal(t, "Maria", data["assignedTo"])
	assert.Equal(t, "high", data["priority"])

	// Marking clean stamps the timestamp.
	w = env.request(t, http.MethodPatch, url, env.adminToken, map[string]string{"status": "clean"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decodeData(t, w)["lastCleaned"])

	w = env.request(t, http.MethodPatch, url, env.adminToken, map[string]string{"status": "sparkling"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A bad field rejects the whole payload: the valid status beside it
	// must not be applied.
	w = env.request(t, http.MethodPatch, url, env.adminToken, map[string]interface{}{
		"status": "dirty", "priority": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var fresh models.Room
	assert.NoError(t, env.db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.HousekeepingClean, fresh.HousekeepingStatus)

	w = env.request(t, http.MethodPatch, "/api/rooms/99999/housekeeping",
		env.adminToken, map[string]string{"status": "dirty"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	env := setupEnv(t, "ctl_auth")

	w := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New Guest",
		"email":    "new-guest@example.com",
		"password": "Sunrise123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Weak password -> 400.
	w = env.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Weak",
		"email":    "weak@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "new-guest@example.com",
		"password": "Sunrise123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	w = env.request(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new-guest@example.com", decodeData(t, w)["email"])

	w = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "new-guest@example.com",
		"password": "WrongPass999",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

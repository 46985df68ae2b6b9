package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guesthouse-backend/controllers"
	"guesthouse-backend/models"
	"guesthouse-backend/routes"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	guestToken string
	adminToken string
	guestID    uint
}

// setupEnv wires the full router against a fresh in-memory database and
// returns ready-to-use guest and admin tokens.
func setupEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}, &models.Review{}, &models.SavedCard{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	roomService := services.NewRoomService(db)
	hkService := services.NewHousekeepingService(db)
	bookingService := services.NewBookingService(db, roomService, hkService)
	authService := services.NewAuthService(db)
	reviewService := services.NewReviewService(db)
	cardService := services.NewCardService(db)

	router := routes.SetupRouter(
		controllers.NewAuthController(authService),
		controllers.NewRoomController(roomService, bookingService),
		controllers.NewBookingController(bookingService),
		controllers.NewHousekeepingController(hkService),
		controllers.NewReviewController(reviewService),
		controllers.NewCardController(cardService),
	)

	guest := models.User{Name: "Guest", Email: name + "-guest@example.com", Password: "x", Role: models.RoleGuest}
	admin := models.User{Name: "Admin", Email: name + "-admin@example.com", Password: "x", Role: models.RoleAdmin}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to seed guest: %v", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	guestToken, err := utils.GenerateToken(guest.ID, guest.Role)
	if err != nil {
		t.Fatalf("failed to sign guest token: %v", err)
	}
	adminToken, err := utils.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("failed to sign admin token: %v", err)
	}

	return &testEnv{
		db:         db,
		router:     router,
		guestToken: guestToken,
		adminToken: adminToken,
		guestID:    guest.ID,
	}
}

func (e *testEnv) seedRoom(t *testing.T, name, roomType string) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:               name,
		Type:               roomType,
		Price:              85000,
		Guests:             2,
		HousekeepingStatus: models.HousekeepingClean,
		Priority:           models.PriorityNormal,
	}
	if err := e.db.Create(room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func futureDay(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(models.DateLayout)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, _ := response["data"].(map[string]interface{})
	return data
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := setupEnv(t, "ctl_create_booking")
	env.seedRoom(t, "Standard Double Room", "Standard")

	payload := map[string]interface{}{
		"roomType": "Standard",
		"checkIn":  futureDay(1),
		"checkOut": futureDay(4),
		"guests":   2,
	}

	// No token -> 401.
	w := env.request(t, http.MethodPost, "/api/bookings", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "confirmed", data["status"])
	assert.Equal(t, "Standard", data["roomType"])

	// Overlapping dates -> 409.
	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Inverted range -> 400.
	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard",
		"checkIn":  futureDay(4),
		"checkOut": futureDay(1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields -> 400.
	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown room label -> 400.
	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Penthouse",
		"checkIn":  futureDay(10),
		"checkOut": futureDay(12),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := setupEnv(t, "ctl_availability")
	env.seedRoom(t, "Deluxe King Suite", "Deluxe")

	url := fmt.Sprintf("/api/rooms/availability?roomType=Deluxe&checkIn=%s&checkOut=%s",
		futureDay(1), futureDay(4))

	w := env.request(t, http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["available"])

	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Deluxe",
		"checkIn":  futureDay(1),
		"checkOut": futureDay(4),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The booked range is no longer available.
	w = env.request(t, http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["available"])

	// Back-to-back range still is.
	backToBack := fmt.Sprintf("/api/rooms/availability?roomType=Deluxe&checkIn=%s&checkOut=%s",
		futureDay(4), futureDay(6))
	w = env.request(t, http.MethodGet, backToBack, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["available"])

	// Unknown room label reports unavailable rather than an error.
	w = env.request(t, http.MethodGet,
		fmt.Sprintf("/api/rooms/availability?roomType=Penthouse&checkIn=%s&checkOut=%s", futureDay(1), futureDay(2)),
		"", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["available"])

	w = env.request(t, http.MethodGet, "/api/rooms/availability?roomType=Deluxe", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLifecycleEndpoints(t *testing.T) {
	env := setupEnv(t, "ctl_lifecycle")
	room := env.seedRoom(t, "Standard Double Room", "Standard")

	w := env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard",
		"checkIn":  futureDay(0),
		"checkOut": futureDay(2),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := uint(decodeData(t, w)["id"].(float64))

	checkInURL := fmt.Sprintf("/api/bookings/%d/check-in", bookingID)
	checkOutURL := fmt.Sprintf("/api/bookings/%d/check-out", bookingID)

	// Staff routes are closed to guests.
	w = env.request(t, http.MethodPost, checkInURL, env.guestToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, checkInURL, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "checked-in", data["status"])
	assert.NotNil(t, data["realCheckInTime"])

	// Cancelling a checked-in booking is a 409.
	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", bookingID),
		env.guestToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPost, checkOutURL, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, "checked-out", data["status"])
	assert.NotNil(t, data["realCheckOutTime"])

	// Check-out flagged the room for housekeeping.
	var fresh models.Room
	assert.NoError(t, env.db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.HousekeepingDirty, fresh.HousekeepingStatus)

	// Terminal booking: further transitions are rejected.
	w = env.request(t, http.MethodPost, checkOutURL, env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelOwnBookingEndpoint(t *testing.T) {
	env := setupEnv(t, "ctl_cancel")
	env.seedRoom(t, "Standard Double Room", "Standard")

	w := env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard",
		"checkIn":  futureDay(3),
		"checkOut": futureDay(5),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := uint(decodeData(t, w)["id"].(float64))

	patchURL := fmt.Sprintf("/api/bookings/%d", bookingID)

	w = env.request(t, http.MethodPatch, patchURL, env.guestToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decodeData(t, w)["status"])

	// Second cancel -> 409.
	w = env.request(t, http.MethodPatch, patchURL, env.guestToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Guests cannot self check-in through the PATCH route either.
	w = env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard",
		"checkIn":  futureDay(3),
		"checkOut": futureDay(5),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	otherID := uint(decodeData(t, w)["id"].(float64))

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", otherID),
		env.guestToken, map[string]string{"status": "checked-in"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListBookingsScoped(t *testing.T) {
	env := setupEnv(t, "ctl_list_scope")
	env.seedRoom(t, "Standard Double Room", "Standard")
	env.seedRoom(t, "Deluxe King Suite", "Deluxe")

	w := env.request(t, http.MethodPost, "/api/bookings", env.guestToken, map[string]interface{}{
		"roomType": "Standard", "checkIn": futureDay(1), "checkOut": futureDay(3),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Admin books the other room through the same API.
	w = env.request(t, http.MethodPost, "/api/bookings", env.adminToken, map[string]interface{}{
		"roomType": "Deluxe", "checkIn": futureDay(1), "checkOut": futureDay(3),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data []models.Booking `json:"data"`
	}

	w = env.request(t, http.MethodGet, "/api/bookings", env.guestToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, env.guestID, response.Data[0].UserID)

	w = env.request(t, http.MethodGet, "/api/bookings", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/bookings?userId=%d", env.guestID), env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
}

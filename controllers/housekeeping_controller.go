package controllers

import (
	"net/http"

	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type HousekeepingController struct {
	Housekeeping *services.HousekeepingService
}

func NewHousekeepingController(hk *services.HousekeepingService) *HousekeepingController {
	return &HousekeepingController{Housekeeping: hk}
}

// UpdateHousekeepingRequest carries the fields the housekeeping board can
// change. Pointers distinguish "not sent" from zero values.
type UpdateHousekeepingRequest struct {
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	Priority   *string `json:"priority,omitempty"`
}

// UpdateHousekeeping (PATCH /api/rooms/:id/housekeeping) — admin only.
// Any combination of status/assignment/priority is valid.
func (hc *HousekeepingController) UpdateHousekeeping(c *gin.Context) {
	id, ok := roomParam(c)
	if !ok {
		return
	}

	var req UpdateHousekeepingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Status == nil && req.AssignedTo == nil && req.Priority == nil {
		utils.JSONError(c, http.StatusBadRequest, "nothing to update")
		return
	}

	// Validate the whole payload before touching the room: a partial
	// apply must never survive a 400.
	if req.Status != nil && !models.ValidHousekeepingStatus(*req.Status) {
		utils.JSONError(c, http.StatusBadRequest, "unknown housekeeping status")
		return
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		utils.JSONError(c, http.StatusBadRequest, "unknown priority")
		return
	}

	var room *models.Room
	var err error
	if req.Status != nil {
		if room, err = hc.Housekeeping.SetStatus(id, *req.Status); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.AssignedTo != nil {
		if room, err = hc.Housekeeping.AssignStaff(id, *req.AssignedTo); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Priority != nil {
		if room, err = hc.Housekeeping.SetPriority(id, *req.Priority); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	utils.JSONSuccess(c, http.StatusOK, room)
}

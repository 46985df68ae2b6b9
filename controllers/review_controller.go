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

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type CreateReviewRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	RoomType string `json:"roomType"`
}

type ModerateReviewRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// GetReviews (GET /api/reviews) — public sees approved reviews; an admin
// asks for the moderation queue with ?all=true.
func (rc *ReviewController) GetReviews(c *gin.Context) {
	includeAll := false
	if c.Query("all") == "true" {
		_, role, ok := middleware.CurrentActor(c)
		includeAll = ok && role == models.RoleAdmin
	}

	reviews, err := rc.Reviews.List(includeAll)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}

// CreateReview (POST /api/reviews) — authenticated guests only.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, _, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "rating (1-5) and comment are required")
		return
	}

	review, err := rc.Reviews.Create(userID, req.Rating, req.Comment, req.RoomType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

// ModerateReview (PATCH /api/reviews/:id) — admin approve/hide.
func (rc *ReviewController) ModerateReview(c *gin.Context) {
	id, ok := reviewParam(c)
	if !ok {
		return
	}

	var req ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		utils.JSONError(c, http.StatusBadRequest, "approved flag is required")
		return
	}

	review, err := rc.Reviews.SetApproved(id, *req.Approved)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, review)
}

// DeleteReview (DELETE /api/reviews/:id) — admin only.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := reviewParam(c)
	if !ok {
		return
	}

	if err := rc.Reviews.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "review deleted"})
}

func reviewParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return 0, false
	}
	return uint(id), true
}

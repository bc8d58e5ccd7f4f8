package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reading-tracker-backend/internal/domains/user"
	"reading-tracker-backend/internal/shared/response"
	"reading-tracker-backend/internal/shared/utils"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, u)
}

// GetUser handles GET /users/:userID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userID")
	if !utils.IsValidUserID(userID) {
		user.HandleUserError(c, user.ErrInvalidUserID)
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, u)
}

// SetRecommendations handles PUT /users/:userID/recommendations
func (h *UserHandler) SetRecommendations(c *gin.Context) {
	userID := c.Param("userID")
	if !utils.IsValidUserID(userID) {
		user.HandleUserError(c, user.ErrInvalidUserID)
		return
	}

	var req user.SetRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	u, err := h.service.SetRecommendations(c.Request.Context(), userID, req.Recommendations)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, u)
}

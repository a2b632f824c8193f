package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
)

// ProfileHandler manages user profile reads and updates.
type ProfileHandler struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
}

// NewProfileHandler builds a ProfileHandler.
func NewProfileHandler(users repositories.UserRepository, messages repositories.MessageRepository) *ProfileHandler {
	return &ProfileHandler{users: users, messages: messages}
}

// GetUser returns a user's public profile.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile overwrites the caller's profile. A name change patches the
// denormalized sender_name on every message the user ever sent.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("userID")

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	current, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	if current.Name != user.Name {
		if err := h.messages.RenameSender(c.Request.Context(), userID, user.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update message history"})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

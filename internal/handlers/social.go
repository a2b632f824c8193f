package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
)

const feedLimit = 100

// SocialHandler serves the follow graph and the feed.
type SocialHandler struct {
	follows  repositories.FollowRepository
	messages repositories.MessageRepository
}

// NewSocialHandler builds a SocialHandler.
func NewSocialHandler(follows repositories.FollowRepository, messages repositories.MessageRepository) *SocialHandler {
	return &SocialHandler{follows: follows, messages: messages}
}

// Follow adds a follow edge from the caller. Duplicates are a no-op.
func (h *SocialHandler) Follow(c *gin.Context) {
	followeeID, ok := h.bindFolloweeID(c)
	if !ok {
		return
	}

	if err := h.follows.Follow(c.Request.Context(), c.GetInt("userID"), followeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Unfollow removes the caller's follow edge if present.
func (h *SocialHandler) Unfollow(c *gin.Context) {
	followeeID, ok := h.bindFolloweeID(c)
	if !ok {
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), c.GetInt("userID"), followeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FollowStats returns follower/following counts for a user plus whether the
// caller follows them.
func (h *SocialHandler) FollowStats(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.follows.Stats(c.Request.Context(), targetID, c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetFeed returns the newest messages from everyone the caller follows,
// across all rooms.
func (h *SocialHandler) GetFeed(c *gin.Context) {
	items, err := h.messages.FeedForUser(c.Request.Context(), c.GetInt("userID"), feedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}
	if items == nil {
		items = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *SocialHandler) bindFolloweeID(c *gin.Context) (int, bool) {
	var req struct {
		FolloweeID int `json:"followee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	if req.FolloweeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid followee id"})
		return 0, false
	}
	if req.FolloweeID == c.GetInt("userID") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return 0, false
	}
	return req.FolloweeID, true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
)

// GroupHandler serves the campus organization directory.
type GroupHandler struct {
	groups     repositories.GroupRepository
	users      repositories.UserRepository
	ownerEmail string
}

// NewGroupHandler builds a GroupHandler.
func NewGroupHandler(groups repositories.GroupRepository, users repositories.UserRepository, ownerEmail string) *GroupHandler {
	return &GroupHandler{groups: groups, users: users, ownerEmail: ownerEmail}
}

// ListGroups returns directory entries, optionally filtered by campus.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context(), c.Query("campus"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// CreateGroup adds a directory entry, owner only.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	if !requireOwner(c, h.users, h.ownerEmail) {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Campus      string `json:"campus"`
		LogoURL     string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), req.Name, req.Description, req.Campus, req.LogoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}
	c.JSON(http.StatusCreated, group)
}

// JoinGroup resolves a directory entry to its chat room id. Rooms are
// derived from the group name, so joining needs no membership row.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groups.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": models.GroupRoomID(group.Name)})
}

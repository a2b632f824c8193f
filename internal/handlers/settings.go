package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/telemetry"
)

// SettingsHandler serves the owner settings singleton and user feedback.
type SettingsHandler struct {
	settings   repositories.SettingsRepository
	users      repositories.UserRepository
	ownerEmail string
	audit      *telemetry.AuditEmitter
}

// NewSettingsHandler builds a SettingsHandler.
func NewSettingsHandler(settings repositories.SettingsRepository, users repositories.UserRepository, ownerEmail string, audit *telemetry.AuditEmitter) *SettingsHandler {
	return &SettingsHandler{settings: settings, users: users, ownerEmail: ownerEmail, audit: audit}
}

// GetSettings returns the site settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings overwrites the site settings, owner only.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	if !requireOwner(c, h.users, h.ownerEmail) {
		return
	}

	var req struct {
		SiteName          string `json:"site_name" binding:"required"`
		MaintenanceMode   bool   `json:"maintenance_mode"`
		MessengerEnabled  bool   `json:"messenger_enabled"`
		ConfessionEnabled bool   `json:"confession_enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.settings.UpdateSettings(c.Request.Context(), models.OwnerSettings{
		SiteName:          req.SiteName,
		MaintenanceMode:   req.MaintenanceMode,
		MessengerEnabled:  req.MessengerEnabled,
		ConfessionEnabled: req.ConfessionEnabled,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	h.audit.Emit(c.Request.Context(), "WARN", "owner settings updated", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, updated)
}

// CreateFeedback appends a feedback entry from the caller.
func (h *SettingsHandler) CreateFeedback(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb, err := h.settings.CreateFeedback(c.Request.Context(), c.GetInt("userID"), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}
	c.JSON(http.StatusCreated, fb)
}

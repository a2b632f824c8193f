package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"onemsu-server/internal/repositories"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func auditUserID(c *gin.Context) *string {
	if id := c.GetInt("userID"); id != 0 {
		value := strconv.Itoa(id)
		return &value
	}
	return nil
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// requireOwner aborts with 403 unless the authenticated user is the
// configured owner account. Returns false when it aborted.
func requireOwner(c *gin.Context, users repositories.UserRepository, ownerEmail string) bool {
	if ownerEmail == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no owner configured"})
		return false
	}
	user, err := users.GetByID(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return false
	}
	if user.Email != ownerEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "owner only"})
		return false
	}
	return true
}

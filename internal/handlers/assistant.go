package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/assistant"
)

// AssistantHandler proxies prompts to the external assistant service.
type AssistantHandler struct {
	client *assistant.Client
}

// NewAssistantHandler builds an AssistantHandler.
func NewAssistantHandler(client *assistant.Client) *AssistantHandler {
	return &AssistantHandler{client: client}
}

// Ask forwards a prompt. When the upstream is unavailable the handler
// degrades to a canned reply instead of failing the request.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req struct {
		Prompt  string `json:"prompt" binding:"required"`
		Context string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.client.Ask(c.Request.Context(), req.Prompt, req.Context)
	if err != nil {
		log.Printf("assistant unavailable: %v", err)
		c.JSON(http.StatusOK, gin.H{"reply": assistant.CannedReply, "degraded": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

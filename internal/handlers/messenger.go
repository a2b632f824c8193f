package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/ws"
)

const historyPageSize = 50

// MessengerHandler serves the HTTP side of the messenger: history,
// reactions, edit/delete, receipts and presence lookups.
type MessengerHandler struct {
	messages  repositories.MessageRepository
	reactions repositories.ReactionRepository
	receipts  repositories.ReceiptRepository
	hub       *ws.Hub
}

// NewMessengerHandler builds a MessengerHandler.
func NewMessengerHandler(messages repositories.MessageRepository, reactions repositories.ReactionRepository, receipts repositories.ReceiptRepository, hub *ws.Hub) *MessengerHandler {
	return &MessengerHandler{messages: messages, reactions: reactions, receipts: receipts, hub: hub}
}

// GetHistory returns one page of a room's messages, oldest first, enriched
// with reaction aggregates for the viewer. Clients page backward by passing
// the timestamp of the oldest message they already have as `before`.
func (h *MessengerHandler) GetHistory(c *gin.Context) {
	roomID := c.Query("room")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before timestamp"})
			return
		}
		before = &parsed
	}

	msgs, err := h.messages.History(c.Request.Context(), roomID, before, historyPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	views, err := h.enrich(c.Request.Context(), msgs, c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// React toggles the caller's emoji on a message and returns the refreshed
// aggregates.
func (h *MessengerHandler) React(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Emoji string `json:"emoji" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	if _, err := h.messages.GetMessage(c.Request.Context(), messageID); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load message"})
		return
	}

	if err := h.reactions.Toggle(c.Request.Context(), messageID, userID, req.Emoji); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle reaction"})
		return
	}

	counts, mine, err := h.reactions.AggregatesFor(c.Request.Context(), []int{messageID}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reactions"})
		return
	}

	reactions := counts[messageID]
	if reactions == nil {
		reactions = []models.ReactionCount{}
	}
	myReactions := mine[messageID]
	if myReactions == nil {
		myReactions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"reactions": reactions, "my_reactions": myReactions})
}

// EditMessage updates message content, sender only.
func (h *MessengerHandler) EditMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messages.EditMessage(c.Request.Context(), messageID, c.GetInt("userID"), req.Content)
	if err != nil {
		h.writeOwnershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage removes a message and its reactions, sender only.
func (h *MessengerHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messages.DeleteMessage(c.Request.Context(), messageID, c.GetInt("userID")); err != nil {
		h.writeOwnershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": messageID})
}

// StartDM resolves the canonical room id for a direct conversation with
// another user. Both parties land on the same id regardless of who asks.
func (h *MessengerHandler) StartDM(c *gin.Context) {
	otherID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	if otherID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": models.DMRoomID(userID, otherID)})
}

// GetReceipt returns the other DM party's last-read marker. Non-DM rooms
// and callers outside the conversation always report null.
func (h *MessengerHandler) GetReceipt(c *gin.Context) {
	roomID := c.Query("room")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}

	a, b, ok := models.ParseDMRoom(roomID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"last_read": nil})
		return
	}

	userID := c.GetInt("userID")
	if userID != a && userID != b {
		c.JSON(http.StatusOK, gin.H{"last_read": nil})
		return
	}

	other := a
	if userID == a {
		other = b
	}

	lastRead, err := h.receipts.LastRead(c.Request.Context(), other, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load receipt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"last_read": lastRead})
}

// GetPresence reports whether a user has at least one open connection.
func (h *MessengerHandler) GetPresence(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": h.hub.IsOnline(userID)})
}

func (h *MessengerHandler) enrich(ctx context.Context, msgs []models.Message, viewerID int) ([]models.MessageView, error) {
	ids := make([]int, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}

	counts, mine, err := h.reactions.AggregatesFor(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		view := models.MessageView{
			Message:     m,
			Reactions:   counts[m.ID],
			MyReactions: mine[m.ID],
		}
		if view.Reactions == nil {
			view.Reactions = []models.ReactionCount{}
		}
		if view.MyReactions == nil {
			view.MyReactions = []string{}
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *MessengerHandler) writeOwnershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
	case errors.Is(err, repositories.ErrNotMessageOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the sender can modify this message"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to modify message"})
	}
}

package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"onemsu-server/internal/models"
	"onemsu-server/internal/observability"
	"onemsu-server/internal/repositories"
)

// MessengerWebSocketHandler runs the bidirectional messenger connection:
// join/chat/seen inbound, chat/presence outbound.
type MessengerWebSocketHandler struct {
	hub      *Hub
	messages repositories.MessageRepository
	receipts repositories.ReceiptRepository
}

// NewMessengerWebSocketHandler constructs a MessengerWebSocketHandler.
func NewMessengerWebSocketHandler(hub *Hub, messages repositories.MessageRepository, receipts repositories.ReceiptRepository) *MessengerWebSocketHandler {
	return &MessengerWebSocketHandler{hub: hub, messages: messages, receipts: receipts}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and runs the read loop until disconnect.
// Identity arrives with the first join event, not the handshake.
func (h *MessengerWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("onemsu-server/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}

	observability.IncWSActive("messenger")
	observability.IncWSEvent("messenger", "ws_connect")
	h.publishLifecycle(ctx, "ws_connect", info, "")

	var closeReason string
	defer func() {
		h.hub.Leave(conn)
		observability.DecWSActive("messenger")
		observability.IncWSEvent("messenger", "ws_disconnect")
		h.publishLifecycle(ctx, "ws_disconnect", info, closeReason)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("messenger", "ws_error")
				h.publishLifecycle(ctx, "ws_error", info, closeReason)
			}
			return
		}
		h.dispatch(ctx, conn, data, &info)
	}
}

// dispatch handles one inbound envelope. Malformed events are logged and
// dropped so one bad message never severs the session.
func (h *MessengerWebSocketHandler) dispatch(ctx context.Context, conn Conn, data []byte, info *ConnInfo) {
	var ev models.ClientEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("websocket: dropping malformed event: %v", err)
		observability.IncWSEvent("messenger", "bad_payload")
		return
	}

	switch ev.Type {
	case "join":
		if ev.UserID <= 0 || ev.RoomID == "" {
			log.Printf("websocket: dropping join with missing identity")
			return
		}
		info.UserID = ev.UserID
		h.hub.Join(conn, ev.UserID, ev.RoomID)
		observability.IncWSEvent("messenger", "join")
	case "chat":
		if ev.SenderID <= 0 || ev.RoomID == "" || (ev.Content == "" && ev.AttachmentURL == "") {
			log.Printf("websocket: dropping chat with missing fields")
			return
		}
		msg, err := h.messages.CreateMessage(ctx, ev.SenderID, ev.SenderName, ev.Content, ev.RoomID, ev.AttachmentURL, ev.AttachmentType)
		if err != nil {
			log.Printf("websocket: store message failed: %v", err)
			return
		}
		view := models.MessageView{Message: msg, Reactions: []models.ReactionCount{}, MyReactions: []string{}}
		h.hub.BroadcastRoom(ev.RoomID, models.ChatBroadcast{Type: "chat", MessageView: view})
		observability.IncWSEvent("messenger", "chat")
	case "seen":
		if ev.UserID <= 0 || ev.RoomID == "" || ev.LastRead.IsZero() {
			log.Printf("websocket: dropping seen with missing fields")
			return
		}
		if err := h.receipts.MarkSeen(ctx, ev.UserID, ev.RoomID, ev.LastRead); err != nil {
			log.Printf("websocket: mark seen failed: %v", err)
		}
	default:
		log.Printf("websocket: unknown event type %q", ev.Type)
	}
}

func (h *MessengerWebSocketHandler) publishLifecycle(ctx context.Context, event string, info ConnInfo, reason string) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"kind":        "messenger",
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"user_id": info.UserID,
			"ip":      info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(ctx, "ws_events.messenger", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	}, headers)
}

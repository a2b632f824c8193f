package models

import "time"

// Message is a chat message row. SenderName is a denormalized snapshot of
// the sender's current name and is rewritten when the user renames.
type Message struct {
	ID             int        `db:"id" json:"id"`
	SenderID       int        `db:"sender_id" json:"sender_id"`
	SenderName     string     `db:"sender_name" json:"sender_name"`
	Content        string     `db:"content" json:"content"`
	RoomID         string     `db:"room_id" json:"room_id"`
	AttachmentURL  string     `db:"attachment_url" json:"attachment_url,omitempty"`
	AttachmentType string     `db:"attachment_type" json:"attachment_type,omitempty"`
	EditedAt       *time.Time `db:"edited_at" json:"edited_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"timestamp"`
}

// ReactionCount is the aggregated count for one emoji on one message.
type ReactionCount struct {
	Emoji string `db:"emoji" json:"emoji"`
	Count int    `db:"count" json:"count"`
}

// MessageView is a message enriched for a particular viewer.
type MessageView struct {
	Message
	Reactions   []ReactionCount `json:"reactions"`
	MyReactions []string        `json:"my_reactions"`
}

// ClientEvent is the inbound websocket envelope. Fields beyond Type are
// populated depending on the event kind (join, chat, seen).
type ClientEvent struct {
	Type           string    `json:"type"`
	UserID         int       `json:"userId"`
	RoomID         string    `json:"roomId"`
	SenderID       int       `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Content        string    `json:"content"`
	AttachmentURL  string    `json:"attachmentUrl"`
	AttachmentType string    `json:"attachmentType"`
	LastRead       time.Time `json:"lastRead"`
}

// ChatBroadcast is the outbound envelope for a persisted message.
type ChatBroadcast struct {
	Type string `json:"type"`
	MessageView
}

// PresenceEvent announces a user's online transition to every connection.
type PresenceEvent struct {
	Type   string `json:"type"`
	UserID int    `json:"userId"`
	Online bool   `json:"online"`
}

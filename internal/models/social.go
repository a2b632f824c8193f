package models

import "time"

// Follow is a directed edge in the follow graph.
type Follow struct {
	FollowerID int       `db:"follower_id" json:"follower_id"`
	FolloweeID int       `db:"followee_id" json:"followee_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FollowStats summarizes a user's position in the follow graph.
type FollowStats struct {
	Followers   int  `json:"followers"`
	Following   int  `json:"following"`
	IsFollowing bool `json:"isFollowing"`
}

// ReadReceipt records the latest message timestamp a user has observed in a
// room. Last writer wins; the timestamp is not required to move forward.
type ReadReceipt struct {
	UserID   int       `db:"user_id" json:"user_id"`
	RoomID   string    `db:"room_id" json:"room_id"`
	LastRead time.Time `db:"last_read" json:"last_read"`
}

// Group is a campus organization directory entry. Joining one maps to a
// room id derived from the group name, not to the group row itself.
type Group struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Campus      string    `db:"campus" json:"campus"`
	LogoURL     string    `db:"logo_url" json:"logo_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FreedomPost is an anonymous wall post. The author id is stored for
// accountability but never serialized into a response.
type FreedomPost struct {
	ID        int       `db:"id" json:"id"`
	UserID    *int      `db:"user_id" json:"-"`
	Alias     string    `db:"alias" json:"alias"`
	Content   string    `db:"content" json:"content"`
	Campus    string    `db:"campus" json:"campus"`
	ImageURL  string    `db:"image_url" json:"image_url,omitempty"`
	Likes     int       `db:"likes" json:"likes"`
	Reports   int       `db:"reports" json:"reports"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// Feedback is an append-only user feedback entry.
type Feedback struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OwnerSettings is the singleton site configuration row.
type OwnerSettings struct {
	ID                int       `db:"id" json:"-"`
	SiteName          string    `db:"site_name" json:"site_name"`
	MaintenanceMode   bool      `db:"maintenance_mode" json:"maintenance_mode"`
	MessengerEnabled  bool      `db:"messenger_enabled" json:"messenger_enabled"`
	ConfessionEnabled bool      `db:"confession_enabled" json:"confession_enabled"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

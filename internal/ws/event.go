package ws

import (
	"time"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

const (
	// client → server
	EventGetOnlineUsers = "get_online_users"

	// server → client
	EventOnlineUsers = "online_users"
	EventUserJoined  = "user_joined"
	EventUserLeft    = "user_left"
)

// Event is the wire envelope for every frame on the push channel.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// PresenceChange is the payload of user_joined and user_left broadcasts.
type PresenceChange struct {
	UserID    string         `json:"userId"`
	UserInfo  domain.UserRef `json:"userInfo"`
	Timestamp time.Time      `json:"timestamp"`
}

// OnlineUser is one element of the online_users snapshot.
type OnlineUser struct {
	UserID   string         `json:"userId"`
	UserInfo domain.UserRef `json:"userInfo"`
}

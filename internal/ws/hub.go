// Package ws implements the presence channel: a websocket endpoint through
// which authenticated users are tracked while connected and notified as
// peers join and leave.
package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcollab/devcollab-api/internal/api/metrics"
	"github.com/devcollab/devcollab-api/internal/core/domain"
)

const (
	sendBuffer   = 16
	storeTimeout = 3 * time.Second
	refreshEvery = 30 * time.Second
)

// Store mirrors presence entries into an external keyed store with TTL, as a
// safety net against missed disconnects. A nil Store disables mirroring.
type Store interface {
	Put(ctx context.Context, userID string, info domain.UserRef) error
	Refresh(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID string) error
}

// session is one registered connection. The closed flag is touched only by
// the hub goroutine.
type session struct {
	userID string
	info   domain.UserRef
	send   chan []byte
	closed bool
}

func newSession(userID string, info domain.UserRef) *session {
	return &session{userID: userID, info: info, send: make(chan []byte, sendBuffer)}
}

// Hub owns the presence registry. All mutations flow through its channels and
// are applied by the single Run goroutine, so the map needs no locking.
// Invariant: at most one session per user identifier; the last registered
// connection wins.
type Hub struct {
	register   chan *session
	unregister chan *session
	snapshots  chan *session
	store      Store
	log        zerolog.Logger
}

func NewHub(store Store, log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *session),
		unregister: make(chan *session),
		snapshots:  make(chan *session),
		store:      store,
		log:        log,
	}
}

// Run processes registry commands until ctx is cancelled. It must be started
// exactly once, before the websocket endpoint accepts connections.
func (h *Hub) Run(ctx context.Context) {
	sessions := make(map[string]*session)

	ticker := time.NewTicker(refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for _, s := range sessions {
				h.closeSession(s)
			}
			return

		case s := <-h.register:
			if old, ok := sessions[s.userID]; ok {
				// Same user reconnected: drop the superseded connection
				// without a user_left broadcast: the user is still online.
				h.closeSession(old)
			}
			sessions[s.userID] = s
			metrics.WSConnections.Inc()
			h.mirrorPut(ctx, s)
			h.broadcast(sessions, Event{
				Event: EventUserJoined,
				Data:  PresenceChange{UserID: s.userID, UserInfo: s.info, Timestamp: time.Now().UTC()},
			})
			metrics.PresenceEventsTotal.WithLabelValues(EventUserJoined).Inc()
			h.log.Info().Str("user_id", s.userID).Msg("user joined")

		case s := <-h.unregister:
			if s.closed {
				continue
			}
			h.closeSession(s)
			if cur, ok := sessions[s.userID]; !ok || cur != s {
				continue
			}
			delete(sessions, s.userID)
			metrics.WSConnections.Dec()
			h.mirrorRemove(ctx, s)
			h.broadcast(sessions, Event{
				Event: EventUserLeft,
				Data:  PresenceChange{UserID: s.userID, UserInfo: s.info, Timestamp: time.Now().UTC()},
			})
			metrics.PresenceEventsTotal.WithLabelValues(EventUserLeft).Inc()
			h.log.Info().Str("user_id", s.userID).Msg("user left")

		case s := <-h.snapshots:
			list := make([]OnlineUser, 0, len(sessions))
			for _, entry := range sessions {
				list = append(list, OnlineUser{UserID: entry.userID, UserInfo: entry.info})
			}
			h.send(s, Event{Event: EventOnlineUsers, Data: list})

		case <-ticker.C:
			h.mirrorRefresh(ctx, sessions)
		}
	}
}

// Register adds a connection to the registry and broadcasts user_joined.
func (h *Hub) Register(s *session) {
	h.register <- s
}

// Unregister removes a connection and broadcasts user_left, if the connection
// still owns its registry entry.
func (h *Hub) Unregister(s *session) {
	h.unregister <- s
}

// RequestSnapshot asks the hub to push an online_users frame to s.
func (h *Hub) RequestSnapshot(s *session) {
	h.snapshots <- s
}

func (h *Hub) broadcast(sessions map[string]*session, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Event).Msg("marshal broadcast")
		return
	}
	for _, s := range sessions {
		h.push(s, payload)
	}
}

func (h *Hub) send(s *session, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Event).Msg("marshal frame")
		return
	}
	h.push(s, payload)
}

// push delivers without blocking the hub; a client whose buffer is full
// misses the frame rather than stalling the registry.
func (h *Hub) push(s *session, payload []byte) {
	if s.closed {
		return
	}
	select {
	case s.send <- payload:
	default:
		h.log.Warn().Str("user_id", s.userID).Msg("slow presence client, frame dropped")
	}
}

func (h *Hub) closeSession(s *session) {
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

func (h *Hub) mirrorPut(ctx context.Context, s *session) {
	if h.store == nil {
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := h.store.Put(opCtx, s.userID, s.info); err != nil {
		h.log.Warn().Err(err).Str("user_id", s.userID).Msg("presence mirror put failed")
	}
}

func (h *Hub) mirrorRemove(ctx context.Context, s *session) {
	if h.store == nil {
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := h.store.Remove(opCtx, s.userID); err != nil {
		h.log.Warn().Err(err).Str("user_id", s.userID).Msg("presence mirror remove failed")
	}
}

func (h *Hub) mirrorRefresh(ctx context.Context, sessions map[string]*session) {
	if h.store == nil {
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	for id := range sessions {
		if err := h.store.Refresh(opCtx, id); err != nil {
			h.log.Warn().Err(err).Str("user_id", id).Msg("presence mirror refresh failed")
		}
	}
}

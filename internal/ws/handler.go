package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcollab/devcollab-api/internal/core/domain"
	"github.com/devcollab/devcollab-api/internal/core/ports"
	"github.com/devcollab/devcollab-api/internal/pkg/token"
)

// Handler authenticates websocket handshakes and hands accepted connections
// to the hub.
type Handler struct {
	hub       *Hub
	users     ports.UserRepository
	jwtSecret string
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

func NewHandler(hub *Hub, users ports.UserRepository, jwtSecret string, log zerolog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		users:     users,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from a separate origin; authentication
			// is the token, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws. The handshake carries the bearer token in the
// "token" query parameter; a missing or invalid token rejects the connection
// before the upgrade, so no presence entry or broadcast is produced.
func (h *Handler) Serve(c echo.Context) error {
	raw := c.QueryParam("token")
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing auth token")
	}

	claims, err := token.Verify(h.jwtSecret, raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "invalid token")
	}

	user, err := h.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "unknown account")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written its own error response.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	sess := newSession(user.ID, domain.UserRef{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
	})
	newClient(h.hub, conn, sess, h.log).run()
	return nil
}

package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client pumps frames between a single websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	sess *session
	log  zerolog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, sess *session, log zerolog.Logger) *Client {
	return &Client{hub: hub, conn: conn, sess: sess, log: log}
}

// run registers the session and starts both pumps. It returns when the
// connection drops; unregistration happens in the read pump.
func (c *Client) run() {
	c.hub.Register(c.sess)
	go c.writePump()
	c.readPump()
}

// readPump consumes client frames until the connection closes, then
// unregisters the session. The only recognised client event is
// get_online_users; anything else is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c.sess)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Str("user_id", c.sess.userID).Msg("websocket closed abnormally")
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			c.log.Debug().Err(err).Str("user_id", c.sess.userID).Msg("unreadable client frame")
			continue
		}

		if ev.Event == EventGetOnlineUsers {
			c.hub.RequestSnapshot(c.sess)
		}
	}
}

// writePump forwards hub frames to the connection and keeps it alive with
// pings. It exits when the hub closes the session's send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.sess.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

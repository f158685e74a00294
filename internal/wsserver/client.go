package wsserver

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to a client.
	sendToClientWait = 10 * time.Second

	// Time allowed to read a pong after sending a ping. A dead connection is
	// detected through the ping-pong cycle even when no game traffic flows.
	pongWait = 60 * time.Second

	// Must be shorter than pongWait.
	pingInterval = 50 * time.Second

	// Requests are small JSON envelopes.
	maxMessageSize = 1024
)

// A client is a WebSocket connection with player metadata and a link back to
// its room.
type client struct {
	*websocket.Conn

	id   uuid.UUID
	name string
	room *Room
	send chan []byte
}

func (c *client) ID() uuid.UUID {
	return c.id
}

func (c *client) Name() string {
	return c.name
}

// Send queues a message for the client. A full send buffer means the client
// cannot keep up with the table, so the connection gets closed. Only safe to
// call from the room's processing goroutine.
func (c *client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
		c.Conn.Close()
	}
}

func (c *client) Close() {
	c.Conn.Close()
}

func (c *client) readPump() {
	defer func() {
		c.room.unregister <- c
		c.Conn.Close()
	}()

	c.SetReadLimit(maxMessageSize)
	c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}
		c.room.requests <- request{c, msg}
	}
}

func (c *client) writePump() {
	pingTicker := time.NewTicker(pingInterval)

	defer func() {
		pingTicker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, open := <-c.send:
			c.SetWriteDeadline(time.Now().Add(sendToClientWait))
			if !open {
				c.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-pingTicker.C:
			deadline := time.Now().Add(sendToClientWait)
			if err := c.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

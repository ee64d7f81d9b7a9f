package api

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// send buffer depth and pong/write deadlines, mirroring the teacher's
// gorilla/websocket demo client but with explicit deadlines added (the
// teacher's demo has none, since it never leaves localhost).
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	sendBufferSize = 256
)

// Client is one websocket connection, registered against at most one
// Session at a time. Grounded on the teacher's cmd/web-demo/main.go
// Client, with playerID/gameID generalized to a registry lookup instead
// of fields mutated by handleMessage.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	sessionID string
	player    string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan []byte, sendBufferSize)}
}

// readPump reads frames off the connection and hands them to the hub for
// dispatch until the connection errors or closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.send <- encodeError(err)
			continue
		}
		c.hub.handle(c, msg)
	}
}

// writePump drains c.send onto the connection, and keeps it alive with
// periodic pings, until send is closed by the hub on unregister.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

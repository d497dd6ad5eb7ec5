package gateway

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
	pingPeriod    = 30 * time.Second
	maxFrameBytes = 65536
)

// Connection is one client's WebSocket, mirroring the teacher's
// Connection struct: a buffered Send channel decouples the slow,
// one-at-a-time outbound writer from whatever produced the message
// (an ACK reply or a session broadcast).
type Connection struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Gateway *Gateway

	sessionID string
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameBytes)
	c.Conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] read error on %s: %v", c.ID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		c.Gateway.handleMessage(c, message)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) sendFeedback(f Feedback) {
	data, err := json.Marshal(f)
	if err != nil {
		log.Printf("[Gateway] failed to marshal feedback: %v", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Printf("[Gateway] dropping feedback for %s, send buffer full", c.ID)
	}
}

func (c *Connection) sendError(err error) {
	c.sendFeedback(Feedback{Status: StatusErr, Data: err.Error()})
}

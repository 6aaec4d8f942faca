package canvas

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Client is one websocket connection to a canvas room.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	mu       sync.Mutex
	send     chan []byte
	closed   bool
	Subject  string
	CanvasID string
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, subject, canvasID, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		Subject:  subject,
		CanvasID: canvasID,
		ClientID: clientID,
	}
}

// ReadPump applies incoming messages to the client's room until the
// connection ends, then leaves the room.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	err := readLoop(ctx, c.conn, func(msg *Message) {
		msg.ClientID = c.ClientID
		msg.CanvasID = c.CanvasID
		c.hub.handleMessage(c, msg)
	})
	if err != nil {
		slog.Debug("read error", "error", err, "subject", c.Subject)
	}
}

// WritePump delivers queued messages and keeps the connection alive with
// pings. It returns once the hub closes the queue.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	if err := writeLoop(ctx, c.conn, c.send, pingPeriod); err != nil && ctx.Err() == nil {
		slog.Debug("write error", "error", err, "subject", c.Subject)
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "subject", c.Subject)
	}
}

// close ends the write pump. Later sends are dropped.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

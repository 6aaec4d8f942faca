package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/coder/websocket"
)

// Remote is a producer connection to a canvas server. Send never blocks:
// requests are queued and written by a background pump.
type Remote struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool

	ctx     context.Context
	cancel  context.CancelFunc
	written chan struct{} // closed when the write pump exits
}

// Dial connects to a canvas endpoint such as
// ws://localhost:8080/ws/canvas/cnv_... . A non-empty token is passed as the
// token query parameter.
func Dial(ctx context.Context, rawURL, token string) (*Remote, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse canvas url: %w", err)
	}
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial canvas: %w", err)
	}
	conn.SetReadLimit(maxMsgSize)

	pumpCtx, cancel := context.WithCancel(context.Background())
	r := &Remote{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		ctx:     pumpCtx,
		cancel:  cancel,
		written: make(chan struct{}),
	}
	go r.writePump()
	go r.readPump()
	return r, nil
}

// Send queues one request. Requests are dropped when the queue is full or
// the connection is closed.
func (r *Remote) Send(request string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		slog.Warn("canvas connection closed, dropping request")
		return
	}
	select {
	case r.send <- []byte(request):
	default:
		slog.Warn("canvas send buffer full, dropping request")
	}
}

// Close flushes the queued requests and closes the connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.send)
	r.mu.Unlock()

	<-r.written
	err := r.conn.Close(websocket.StatusNormalClosure, "")
	r.cancel()
	return err
}

func (r *Remote) writePump() {
	defer close(r.written)

	if err := writeLoop(r.ctx, r.conn, r.send, 0); err != nil {
		slog.Error("canvas write", "error", err)
		// Drain so Close does not wait on a dead connection.
		for range r.send {
		}
	}
}

// readPump consumes acknowledgements and reports rejected requests. Reading
// also keeps ping and close frames flowing.
func (r *Remote) readPump() {
	if err := readLoop(r.ctx, r.conn, r.handle); err != nil && r.ctx.Err() == nil {
		slog.Debug("canvas read", "error", err)
	}
}

func (r *Remote) handle(msg *Message) {
	switch msg.Type {
	case TypeError:
		reason, err := rejectionReason(msg)
		if err != nil {
			slog.Warn("canvas rejected request", "error", err)
			return
		}
		slog.Warn("canvas rejected request", "reason", reason)
	case TypeAck:
		slog.Debug("canvas ack", "seq", msg.Seq)
	}
}

// rejectionReason decodes the payload of an error message.
func rejectionReason(msg *Message) (string, error) {
	var p ErrorPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return "", fmt.Errorf("decode error payload: %w", err)
	}
	return p.Message, nil
}

// LogSender logs each request instead of sending it anywhere.
type LogSender struct {
	Logger *slog.Logger
}

func (l LogSender) Send(request string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("send to canvas", "request", request)
}

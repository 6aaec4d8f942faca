package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// writeLoop writes queued frames until queue is closed, a write fails or
// ctx is done. A positive pingEvery also pings the peer at that interval.
func writeLoop(ctx context.Context, conn *websocket.Conn, queue <-chan []byte, pingEvery time.Duration) error {
	var tick <-chan time.Time
	if pingEvery > 0 {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case data, ok := <-queue:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case <-tick:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// readLoop decodes every incoming frame into a Message and passes it to
// handle. Undecodable frames are logged and skipped. A normal or going-away
// close ends the loop with a nil error.
func readLoop(ctx context.Context, conn *websocket.Conn, handle func(*Message)) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid canvas message", "error", err)
			continue
		}
		handle(&msg)
	}
}

package canvas

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Board holds the ordered display list of one canvas.
type Board struct {
	mu    sync.RWMutex
	items []DrawItem
	seq   int64
}

func NewBoard() *Board {
	return &Board{}
}

// Apply applies a draw or clear message and returns the new sequence number.
func (b *Board) Apply(msg *Message) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch msg.Type {
	case TypeDraw:
		var p DrawPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return 0, fmt.Errorf("invalid draw payload: %w", err)
		}
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("invalid draw payload: %w", err)
		}
		b.seq++
		b.items = append(b.items, DrawItem{Seq: b.seq, DrawPayload: p})
	case TypeClear:
		b.seq++
		b.items = nil
	default:
		return 0, fmt.Errorf("unknown message type: %s", msg.Type)
	}
	return b.seq, nil
}

// Items returns a copy of the display list.
func (b *Board) Items() []DrawItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.items)
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func (b *Board) StateMessage() *Message {
	b.mu.RLock()
	state := StatePayload{Seq: b.seq, Items: slices.Clone(b.items)}
	b.mu.RUnlock()

	if state.Items == nil {
		state.Items = []DrawItem{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		slog.Error("marshal canvas state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypeState,
		Seq:     state.Seq,
		Payload: payload,
	}
}

package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/formes/backend-go/internal/shape"
)

type Message struct {
	Type     string          `json:"type"`
	CanvasID string          `json:"canvasId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	TypeDraw  = "draw"
	TypeClear = "canvas.clear"
	TypeState = "canvas.state"
	TypeAck   = "canvas.ack"
	TypeError = "error"
)

const (
	KindSegment = "segment"
	KindCircle  = "circle"
	KindPolygon = "polygon"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawPayload is the payload of a draw message. Segments carry two points,
// circles carry their center and a radius, polygons carry their vertices.
type DrawPayload struct {
	Kind   string  `json:"kind"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
	Radius float64 `json:"radius,omitempty"`
}

// DrawItem is a draw request accepted by a board, with its server sequence.
type DrawItem struct {
	Seq int64 `json:"seq"`
	DrawPayload
}

type StatePayload struct {
	Seq   int64      `json:"seq"`
	Items []DrawItem `json:"items"`
}

type AckPayload struct {
	Seq int64 `json:"seq"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Validate checks the kind, color and geometry of a draw request.
func (p DrawPayload) Validate() error {
	if _, err := shape.ParseColor(p.Color); err != nil {
		return err
	}
	switch p.Kind {
	case KindSegment:
		if len(p.Points) != 2 {
			return fmt.Errorf("segment needs 2 points, got %d", len(p.Points))
		}
	case KindCircle:
		if len(p.Points) != 1 {
			return fmt.Errorf("circle needs 1 point, got %d", len(p.Points))
		}
		if !(p.Radius > 0) {
			return fmt.Errorf("circle: %w", shape.ErrInvalidRadius)
		}
	case KindPolygon:
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	return nil
}

// EncodeDraw returns the wire form of a draw message.
func EncodeDraw(p DrawPayload) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal draw payload: %w", err)
	}
	data, err := json.Marshal(Message{Type: TypeDraw, Payload: payload})
	if err != nil {
		return "", fmt.Errorf("marshal draw message: %w", err)
	}
	return string(data), nil
}

func errorMessage(err error) *Message {
	payload, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	return &Message{Type: TypeError, Payload: payload}
}

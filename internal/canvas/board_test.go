package canvas

import (
	"encoding/json"
	"testing"
)

func drawMessage(t *testing.T, p DrawPayload) *Message {
	t.Helper()
	req, err := EncodeDraw(p)
	if err != nil {
		t.Fatal(err)
	}
	var msg Message
	if err := json.Unmarshal([]byte(req), &msg); err != nil {
		t.Fatal(err)
	}
	return &msg
}

var redSegment = DrawPayload{Kind: KindSegment, Color: "red", Points: []Point{{0, 0}, {2, 2}}}

func TestBoardApply(t *testing.T) {
	b := NewBoard()

	seq, err := b.Apply(drawMessage(t, redSegment))
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("got seq %d, want 1", seq)
	}

	circle := DrawPayload{Kind: KindCircle, Color: "blue", Points: []Point{{5, 5}}, Radius: 2}
	if seq, err = b.Apply(drawMessage(t, circle)); err != nil || seq != 2 {
		t.Fatalf("Apply(circle) = %d, %v", seq, err)
	}

	items := b.Items()
	if len(items) != 2 || items[0].Seq != 1 || items[1].Kind != KindCircle {
		t.Errorf("unexpected items %+v", items)
	}

	if seq, err = b.Apply(&Message{Type: TypeClear}); err != nil || seq != 3 {
		t.Fatalf("Apply(clear) = %d, %v", seq, err)
	}
	if b.Len() != 0 {
		t.Errorf("board has %d items after clear", b.Len())
	}
}

func TestBoardRejects(t *testing.T) {
	bad := []DrawPayload{
		{Kind: KindSegment, Color: "red", Points: []Point{{0, 0}}},
		{Kind: KindSegment, Color: "purple", Points: []Point{{0, 0}, {1, 1}}},
		{Kind: KindCircle, Color: "blue", Points: []Point{{0, 0}}},
		{Kind: KindCircle, Color: "blue", Points: []Point{{0, 0}, {1, 1}}, Radius: 1},
		{Kind: "star", Color: "blue"},
	}

	b := NewBoard()
	for _, p := range bad {
		if _, err := b.Apply(drawMessage(t, p)); err == nil {
			t.Errorf("accepted %+v", p)
		}
	}
	if _, err := b.Apply(&Message{Type: TypeDraw, Payload: json.RawMessage(`{"kind":`)}); err == nil {
		t.Error("accepted a truncated payload")
	}
	if _, err := b.Apply(&Message{Type: "canvas.undo"}); err == nil {
		t.Error("accepted an unknown type")
	}
	if b.Len() != 0 {
		t.Errorf("rejected requests left %d items", b.Len())
	}
}

func TestStateMessage(t *testing.T) {
	b := NewBoard()

	var empty StatePayload
	if err := json.Unmarshal(b.StateMessage().Payload, &empty); err != nil {
		t.Fatal(err)
	}
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Errorf("empty board state items = %#v, want empty list", empty.Items)
	}

	if _, err := b.Apply(drawMessage(t, redSegment)); err != nil {
		t.Fatal(err)
	}
	msg := b.StateMessage()
	if msg.Type != TypeState || msg.Seq != 1 {
		t.Errorf("got %s seq %d", msg.Type, msg.Seq)
	}
	var state StatePayload
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 1 || state.Items[0].Color != "red" {
		t.Errorf("unexpected state %+v", state)
	}
}

// Package canvas is the remote drawing service: producers send draw requests
// over a websocket, the hub keeps one display list per canvas and forwards
// every accepted request to the other clients of that canvas.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrHubStopped = errors.New("canvas hub stopped")

type Room struct {
	canvasID string
	clients  map[string]*Client // clientID -> client
	board    *Board
}

func NewRoom(canvasID string) *Room {
	return &Room{
		canvasID: canvasID,
		clients:  make(map[string]*Client),
		board:    NewBoard(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // canvasID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			return
		}
	}
}

// Register adds client to its room. It fails with ErrHubStopped once Run
// has returned.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes client from its room. After Run has returned it does
// nothing.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// roomLocked returns the room of canvasID, creating it when create is set.
// Caller must hold h.mu.
func (h *Hub) roomLocked(canvasID string, create bool) *Room {
	room, ok := h.rooms[canvasID]
	if !ok && create {
		room = NewRoom(canvasID)
		h.rooms[canvasID] = room
	}
	return room
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room := h.roomLocked(client.CanvasID, true)
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Send the current display list to the new client
	if stateMsg := room.board.StateMessage(); stateMsg != nil {
		stateMsg.CanvasID = client.CanvasID
		client.Send(stateMsg)
	}

	slog.Info("client joined", "subject", client.Subject, "canvas", client.CanvasID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.CanvasID]
	if !ok {
		h.mu.Unlock()
		return
	}

	if _, ok := room.clients[client.ClientID]; ok {
		delete(room.clients, client.ClientID)
		client.close()
	}

	if len(room.clients) == 0 && room.board.Len() == 0 {
		delete(h.rooms, client.CanvasID)
	}
	h.mu.Unlock()

	slog.Info("client left", "subject", client.Subject, "canvas", client.CanvasID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	seq, err := h.apply(sender.CanvasID, msg, sender.ClientID)
	if err != nil {
		slog.Warn("rejected canvas message", "error", err, "type", msg.Type, "subject", sender.Subject)
		sender.Send(errorMessage(err))
		return
	}

	ack, _ := json.Marshal(AckPayload{Seq: seq})
	sender.Send(&Message{Type: TypeAck, CanvasID: sender.CanvasID, Seq: seq, Payload: ack})
}

// Publish applies msg to a canvas on behalf of the server and forwards it to
// every client of that canvas.
func (h *Hub) Publish(canvasID string, msg *Message) (int64, error) {
	return h.apply(canvasID, msg, "")
}

func (h *Hub) apply(canvasID string, msg *Message, fromClientID string) (int64, error) {
	h.mu.Lock()
	room := h.roomLocked(canvasID, true)
	h.mu.Unlock()

	seq, err := room.board.Apply(msg)
	if err != nil {
		return 0, err
	}

	out := &Message{
		Type:     msg.Type,
		CanvasID: canvasID,
		ClientID: fromClientID,
		Seq:      seq,
		Payload:  msg.Payload,
	}
	h.broadcastToRoom(canvasID, out, fromClientID)
	return seq, nil
}

// Board returns the display list of a canvas, or nil if the canvas has no room.
func (h *Hub) Board(canvasID string) *Board {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[canvasID]; ok {
		return room.board
	}
	return nil
}

func (h *Hub) broadcastToRoom(canvasID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[canvasID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

// RoomSender publishes raw draw requests to one canvas. It satisfies the
// export package's Sender.
type RoomSender struct {
	hub      *Hub
	canvasID string
}

func (h *Hub) Sender(canvasID string) *RoomSender {
	return &RoomSender{hub: h, canvasID: canvasID}
}

func (s *RoomSender) Send(request string) {
	if err := s.send(request); err != nil {
		slog.Warn("drop canvas request", "error", err, "canvas", s.canvasID)
	}
}

func (s *RoomSender) send(request string) error {
	var msg Message
	if err := json.Unmarshal([]byte(request), &msg); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	_, err := s.hub.Publish(s.canvasID, &msg)
	return err
}

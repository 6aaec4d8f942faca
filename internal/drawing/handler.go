package drawing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/formes/backend-go/internal/auth"
	"github.com/formes/backend-go/internal/canvas"
	"github.com/formes/backend-go/internal/typeid"
)

const maxBodySize = 1 << 20 // 1MB

type Handler struct {
	service *Service
	hub     *canvas.Hub
}

func NewHandler(service *Service, hub *canvas.Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

type createRequest struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type drawResponse struct {
	DrawingID string `json:"drawingId"`
	CanvasID  string `json:"canvasId"`
	Sent      int    `json:"sent"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	d, err := h.service.Create(r.Context(), req.Name, req.Body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("drawing created", "id", d.ID, "shapes", d.Shapes, "subject", auth.SubjectFromContext(r.Context()))
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), mux.Vars(r)["drawingId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Text serves the stored line format as plain text.
func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), mux.Vars(r)["drawingId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(d.Body))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	drawings, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("list drawings failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, drawings)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), mux.Vars(r)["drawingId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Draw pushes a drawing to the canvas named by the canvas query parameter.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	drawingID := mux.Vars(r)["drawingId"]
	canvasID := r.URL.Query().Get("canvas")
	if err := typeid.Validate(canvasID, typeid.PrefixCanvas); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid canvas id"})
		return
	}

	sent, err := h.service.Draw(r.Context(), drawingID, h.hub.Sender(canvasID))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	slog.Info("drawing sent", "id", drawingID, "canvas", canvasID, "requests", sent)
	writeJSON(w, http.StatusOK, drawResponse{DrawingID: drawingID, CanvasID: canvasID, Sent: sent})
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid drawing id"})
	case errors.Is(err, ErrInvalidBody):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

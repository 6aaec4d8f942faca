package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/formes/backend-go/internal/auth"
	"github.com/formes/backend-go/internal/canvas"
	"github.com/formes/backend-go/internal/config"
	"github.com/formes/backend-go/internal/drawing"
	mw "github.com/formes/backend-go/internal/middleware"
	"github.com/formes/backend-go/internal/store"
	"github.com/formes/backend-go/internal/typeid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		slog.Error("open store", "error", err, "driver", cfg.StoreDriver)
		os.Exit(1)
	}
	defer st.Close()

	authService := auth.NewService(cfg.JWTSecret)

	hub := canvas.NewHub()
	go hub.Run(ctx)

	drawingService := drawing.NewService(st)
	drawingHandler := drawing.NewHandler(drawingService, hub)

	origins := cfg.Origins()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/drawings", drawingHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/drawings", drawingHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/drawings/{drawingId}", drawingHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/drawings/{drawingId}", drawingHandler.Delete).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/drawings/{drawingId}/text", drawingHandler.Text).Methods("GET", "OPTIONS")
	api.HandleFunc("/drawings/{drawingId}/draw", drawingHandler.Draw).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	r.HandleFunc("/ws/canvas/{canvasId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "store", cfg.StoreDriver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *canvas.Hub, authSvc *auth.Service, origins []string) {
	canvasID := mux.Vars(r)["canvasId"]
	if err := typeid.Validate(canvasID, typeid.PrefixCanvas); err != nil {
		http.Error(w, "invalid canvas id", http.StatusBadRequest)
		return
	}

	// Auth via query param, browsers cannot set headers on websocket requests
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	subject, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := canvas.NewClient(hub, conn, subject, canvasID, clientID)

	if err := hub.Register(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

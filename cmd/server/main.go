package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sprayline/sprayline-server/internal/config"
	"github.com/sprayline/sprayline-server/internal/encounter"
	"github.com/sprayline/sprayline-server/internal/handler"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/store"
	"github.com/sprayline/sprayline-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	kv := openStore(cfg)
	defer kv.Close()

	ps := progression.NewStore(kv, cfg.GalleryLimit)
	em := encounter.NewManager()
	defer em.CancelAll()

	hub := ws.NewHub()
	router := handler.NewRouter(hub, em, ps, cfg.PerfectCoverage)
	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	r := chi.NewRouter()
	r.Get("/health", handleHealth)
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		handleWebSocket(hub, w, req)
	})

	// Read-only views for the map/UI layer.
	r.Get("/api/state", jsonView(func() any { return ps.Snapshot() }))
	r.Get("/api/spots", jsonView(func() any { return ps.Spots() }))
	r.Get("/api/gallery", jsonView(func() any { return ps.Gallery() }))

	slog.Info("server starting", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openStore connects to PostgreSQL when configured, falling back to the
// in-memory store so the game stays playable without a database.
func openStore(cfg *config.Config) store.KV {
	if cfg.DatabaseURL == "" {
		slog.Info("no DATABASE_URL, using in-memory store")
		return store.NewMemoryStore()
	}
	kv, err := store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Warn("postgres unavailable, falling back to in-memory store", "error", err)
		return store.NewMemoryStore()
	}
	slog.Info("connected to postgres")
	return kv
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonView(view func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view()); err != nil {
			slog.Error("encoding response failed", "error", err)
		}
	}
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(fmt.Sprintf("client-%d", hub.ClientCount()+1), hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}

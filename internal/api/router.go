package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HannanLK/code-red-server/internal/api/handler"
	apimiddleware "github.com/HannanLK/code-red-server/internal/api/middleware"
	"github.com/HannanLK/code-red-server/internal/middleware"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/storage"
	"github.com/HannanLK/code-red-server/internal/transport/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *room.Registry
	Storage    storage.Storage
	HubManager *ws.HubManager
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Registry, cfg.Storage, cfg.Logger)
	botsHandler := handler.NewBotsHandler()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Room routes
	api.HandleFunc("/rooms/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/join", roomHandler.JoinRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/moves", roomHandler.Moves).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/players/{player_id}/moves", roomHandler.SubmitMove).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/bots", roomHandler.AttachBot).Methods(http.MethodPost)

	// Bot catalog and archived summaries
	api.HandleFunc("/bots", botsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/summaries/{room_id}", roomHandler.Summary).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Realtime game connections live outside the versioned API prefix
	if cfg.HubManager != nil {
		wsHandler := ws.NewHandler(cfg.Registry, cfg.HubManager, cfg.Logger)
		wsHandler.Register(r)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

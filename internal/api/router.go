package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/truthdare-go/internal/api/handler"
	"github.com/mcoot/truthdare-go/internal/api/middleware"
	"github.com/mcoot/truthdare-go/internal/services/session"
	"github.com/mcoot/truthdare-go/internal/web/sse"
	"github.com/mcoot/truthdare-go/internal/web/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Orchestrator   session.OrchestratorInterface
	Rooms          handler.RoomCounter
	HubManager     *sse.HubManager
	SSEBroadcaster *sse.Broadcaster
	WSManager      *ws.Manager
	WSBroadcaster  *ws.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	healthHandler := handler.NewHealthHandler(cfg.Rooms)
	roomHandler := handler.NewRoomHandler(cfg.Orchestrator)
	gameHandler := handler.NewGameHandler(cfg.Orchestrator)
	adminHandler := handler.NewAdminHandler(cfg.Orchestrator)
	streamHandler := handler.NewStreamHandler(
		cfg.Orchestrator, cfg.HubManager, cfg.SSEBroadcaster, cfg.WSManager, cfg.WSBroadcaster, cfg.Logger,
	)

	// Create middleware
	adminMiddleware := middleware.AdminToken()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/state", roomHandler.State).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/events", streamHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/ws", streamHandler.WebSocket).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/game/{roomID}/question", gameHandler.Question).Methods(http.MethodGet)
	api.HandleFunc("/game/{roomID}/next-turn", gameHandler.NextTurn).Methods(http.MethodPost)
	api.Handle("/game/{roomID}/start", adminMiddleware(http.HandlerFunc(gameHandler.Start))).Methods(http.MethodPost)

	// Admin routes (all require the admin token)
	admin := api.PathPrefix("/admin/{roomID}").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/inject-question", adminHandler.InjectQuestion).Methods(http.MethodPost)
	admin.HandleFunc("/game-mode", adminHandler.ChangeGameMode).Methods(http.MethodPut)
	admin.HandleFunc("/force-next-turn", adminHandler.ForceNextTurn).Methods(http.MethodPost)

	return r
}

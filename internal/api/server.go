package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "menedzer-plikow/docs"
	"menedzer-plikow/internal/config"
	"menedzer-plikow/internal/metrics"
	"menedzer-plikow/internal/tree"
	"menedzer-plikow/internal/websocket"
)

type Server struct {
	config  *config.Config
	engine  *tree.Engine
	wsHub   *websocket.Hub
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewServer(cfg *config.Config, engine *tree.Engine, wsHub *websocket.Hub, m *metrics.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		config:  cfg,
		engine:  engine,
		wsHub:   wsHub,
		metrics: m,
		log:     log,
	}
}

// Router mounts every endpoint: the JSON API under /api/v1 plus /ws, /health, /metrics and /swagger.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(MetricsMiddleware(s.metrics))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Menedżer plików działa! Dokumentacja dostępna pod /swagger/index.html"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", s.metrics.Handler())
	r.Get("/ws", s.ServeWsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/nodes", s.ListNodesHandler)
		r.Post("/nodes/folder", s.CreateFolderHandler)
		r.Post("/nodes/file", s.UploadFileHandler)
		r.Get("/nodes/{nodeId}", s.GetNodeHandler)
		r.Get("/nodes/{nodeId}/download", s.DownloadFileHandler)
		r.Patch("/nodes/{nodeId}", s.UpdateNodeHandler)
		r.Post("/nodes/{nodeId}/copy", s.CopyNodeHandler)
		r.Delete("/nodes/{nodeId}", s.DeleteNodeHandler)
		r.Post("/nodes/{nodeId}/restore", s.RestoreNodeHandler)
		r.Delete("/nodes/{nodeId}/permanent", s.PermanentDeleteHandler)
		r.Put("/nodes/{nodeId}/star", s.ToggleStarHandler)
		r.Post("/nodes/{nodeId}/favorite", s.AddFavoriteHandler)
		r.Delete("/nodes/{nodeId}/favorite", s.RemoveFavoriteHandler)
		r.Put("/nodes/{nodeId}/share", s.ShareNodeHandler)
		r.Get("/trash", s.ListTrashHandler)
		r.Delete("/trash/purge", s.PurgeTrashHandler)
		r.Get("/favorites", s.ListFavoritesHandler)
		r.Get("/events", s.GetEventsHandler)
		r.Get("/check", s.CheckHandler)
		r.Post("/check/repair", s.RepairPathsHandler)
	})

	return r
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if s.wsHub != nil {
		clients = s.wsHub.ClientCount()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"websocket_clients": clients,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// Package api exposes the server's HTTP surface: the WebSocket upgrade
// endpoint and a health check.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flooyd/gameserver/internal/middleware"
	"github.com/flooyd/gameserver/internal/ws"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	Logger  *slog.Logger
	Gateway *ws.Gateway
}

// NewRouter creates the HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", cfg.Gateway.ServeWS).Methods(http.MethodGet)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

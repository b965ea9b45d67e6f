// Package api exposes a read-only status surface over the session
// registry: which channels have games and where each game stands.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cardgame-go/internal/services/dispatch"
)

// RouterConfig holds configuration for the status API router
type RouterConfig struct {
	Logger     *slog.Logger
	Dispatcher *dispatch.Dispatcher
}

// NewRouter creates the status API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(cfg.Logger))
	api.Use(Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/channels", channelsHandler(cfg.Dispatcher)).Methods(http.MethodGet)
	api.HandleFunc("/channels/{channel}", channelHandler(cfg.Dispatcher)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func channelsHandler(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channels := d.Channels()
		if channels == nil {
			channels = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
	}
}

func channelHandler(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channel := mux.Vars(r)["channel"]
		sess := d.Get(channel)
		if sess == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no session in channel"})
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

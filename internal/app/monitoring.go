package app

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
)

// MonitoringHandler serves /health, /stats (JSON) and /metrics (Prometheus).
func MonitoringHandler(m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler(m))
	mux.HandleFunc("/stats", statsHandler(m))
	mux.Handle("/metrics", m.Handler())
	return mux
}

// StartMonitoringServer blocks serving MonitoringHandler on port.
func StartMonitoringServer(port string, m *metrics.Metrics, log *slog.Logger) {
	log = logger.Default(log)
	log.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, MonitoringHandler(m)); err != nil {
		log.Error("monitoring server error", "error", err)
	}
}

func healthHandler(m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := m.GetStats()

		status := "ok"
		code := http.StatusOK
		if !stats["is_healthy"].(bool) {
			status = "error"
			code = http.StatusServiceUnavailable
		}

		response := map[string]interface{}{
			"status":     status,
			"last_run":   stats["last_run_time"],
			"last_error": stats["last_error"],
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(response)
	}
}

func statsHandler(m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m.GetStats())
	}
}

package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"gomarketsync_api/internal/auth"
	"gomarketsync_api/internal/storage"
	"gomarketsync_api/metrics"
	"gomarketsync_api/pkg/middleware"
)

const defaultRunsLimit = 20

// NewStatusServer собирает обработчики статусного сервера: метрики,
// health-check и историю запусков. История закрыта JWT, если секрет
// задан; без БД отвечает 503.
func NewStatusServer(repo *storage.RunRepository, jwtSecret string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.MetricsHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	var runsHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleRuns(w, r, repo)
	})
	if jwtSecret != "" {
		runsHandler = auth.AuthMiddleware(jwtSecret)(runsHandler)
	}
	mux.Handle("/api/runs", runsHandler)

	return middleware.PrometheusMiddleware(mux)
}

func handleRuns(w http.ResponseWriter, r *http.Request, repo *storage.RunRepository) {
	if repo == nil {
		http.Error(w, "run history is not configured", http.StatusServiceUnavailable)
		return
	}

	targets := []string{"ozon", "market-fbs", "market-dbs"}
	if param := r.URL.Query().Get("targets"); param != "" {
		targets = strings.Split(param, ",")
	}

	runs, err := repo.RunsByTargets(targets, defaultRunsLimit)
	if err != nil {
		http.Error(w, "failed to read sync runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

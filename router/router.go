// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/questbridge/server/handlers"
	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/metrics"
	"github.com/questbridge/server/middleware"
	"github.com/questbridge/server/models"
)

// NewRouter registers every route and wraps the mux with recovery, CORS and
// request metrics.
func NewRouter(svc *ledger.Service, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	participantHandler := handlers.NewParticipantHandler(svc)
	engagementHandler := handlers.NewEngagementHandler(svc)
	downloadHandler := handlers.NewDownloadHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
			Status:  "ok",
			Message: "QuestBridge API is running",
		})
	})

	// Participant registry
	mux.HandleFunc("POST /api/participants", middleware.WithLogging(participantHandler.Register))
	mux.HandleFunc("GET /api/participants", middleware.WithLogging(participantHandler.List))
	mux.HandleFunc("PUT /api/participants/{id}", middleware.WithLogging(participantHandler.Update))
	mux.HandleFunc("DELETE /api/participants/{id}", middleware.WithLogging(participantHandler.Delete))

	// Engagement
	mux.HandleFunc("POST /api/engagement", middleware.WithLogging(engagementHandler.Log))
	mux.HandleFunc("GET /api/engagement", middleware.WithLogging(engagementHandler.List))
	mux.HandleFunc("GET /api/leaderboard", middleware.WithLogging(engagementHandler.Leaderboard))

	// CSV / XLSX downloads
	mux.HandleFunc("GET /api/download/participants", middleware.WithLogging(downloadHandler.Participants))
	mux.HandleFunc("GET /api/download/engagement", middleware.WithLogging(downloadHandler.Engagement))
	mux.HandleFunc("GET /api/download/leaderboard", middleware.WithLogging(downloadHandler.Leaderboard))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("questbridge API v1"))
	})

	return middleware.Recover(middleware.CORS(middleware.Instrument(m, mux)))
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/middleware"
	"github.com/questbridge/server/models"
)

type EngagementHandler struct {
	svc *ledger.Service
}

func NewEngagementHandler(svc *ledger.Service) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

// Log handles POST /api/engagement
// The email does not have to belong to a registered participant
func (h *EngagementHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req models.LogEngagementRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	l, err := h.svc.LogEngagement(r.Context(), ledger.LogInput{
		ParticipantEmail: req.ParticipantEmail,
		ActivityType:     req.ActivityType,
		Details:          req.Details,
		Score:            req.Score,
	})
	if err != nil {
		writeLedgerError(w, r, err, "Failed to log engagement.")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		Message: "Engagement logged successfully",
		ID:      l.ID,
	})
}

// List handles GET /api/engagement
func (h *EngagementHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.ListEngagement(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to fetch engagement logs.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, logs)
}

// Leaderboard handles GET /api/leaderboard
func (h *EngagementHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to compute leaderboard.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/middleware"
	"github.com/questbridge/server/models"
)

type ParticipantHandler struct {
	svc *ledger.Service
}

func NewParticipantHandler(svc *ledger.Service) *ParticipantHandler {
	return &ParticipantHandler{svc: svc}
}

// Register handles POST /api/participants
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.svc.Register(r.Context(), ledger.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Phone:        req.Phone,
		TicketType:   req.TicketType,
	})
	if err != nil {
		writeLedgerError(w, r, err, "Failed to register participant.")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		Message: "Participant registered successfully",
		ID:      p.ID,
	})
}

// List handles GET /api/participants
// Returns every participant, newest first
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.svc.ListParticipants(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to fetch participants.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// Update handles PUT /api/participants/{id}
// Omitted fields keep their stored values
func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := participantID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid participant id")
		return
	}

	// An empty body is an update with nothing to change
	var req models.UpdateParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.svc.UpdateParticipant(r.Context(), id, ledger.UpdateInput{
		Status:     req.Status,
		TicketType: req.TicketType,
	})
	if err != nil {
		writeLedgerError(w, r, err, "Failed to update participant database record.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Participant updated successfully.",
	})
}

// Delete handles DELETE /api/participants/{id}
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := participantID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid participant id")
		return
	}

	if err := h.svc.DeleteParticipant(r.Context(), id); err != nil {
		writeLedgerError(w, r, err, "Failed to delete participant.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Participant deleted successfully.",
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/middleware"
)

// writeLedgerError maps the ledger taxonomy onto status codes. Storage
// failures are logged and answered with fallback, never the error text.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *ledger.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, ledger.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered.")
	case errors.Is(err, ledger.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found.")
	default:
		slog.Error("ledger operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

// participantID reads the {id} path value
func participantID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

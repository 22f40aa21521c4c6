// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/questbridge/server/export"
	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/middleware"
	"github.com/questbridge/server/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DownloadHandler struct {
	svc *ledger.Service
}

func NewDownloadHandler(svc *ledger.Service) *DownloadHandler {
	return &DownloadHandler{svc: svc}
}

// Participants handles GET /api/download/participants
// 404 when there is nothing to export
func (h *DownloadHandler) Participants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.svc.ListParticipants(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to fetch data.")
		return
	}

	if len(participants) == 0 {
		middleware.JSONResponse(w, http.StatusNotFound, models.MessageResponse{
			Message: "No participants found to download.",
		})
		return
	}

	writeTable(w, r, "participants_list", "participants", export.ParticipantFields, export.ParticipantRecords(participants))
}

// Engagement handles GET /api/download/engagement
// 404 when there is nothing to export
func (h *DownloadHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.ListEngagement(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to fetch data.")
		return
	}

	if len(logs) == 0 {
		middleware.JSONResponse(w, http.StatusNotFound, models.MessageResponse{
			Message: "No logs found to download.",
		})
		return
	}

	writeTable(w, r, "engagement_logs", "engagement", export.EngagementFields, export.EngagementRecords(logs))
}

// Leaderboard handles GET /api/download/leaderboard
// Unlike the other downloads, an empty leaderboard is a header-only 200
func (h *DownloadHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		writeLedgerError(w, r, err, "Failed to fetch data.")
		return
	}

	writeTable(w, r, "event_leaderboard", "leaderboard", export.LeaderboardFields, export.LeaderboardRecords(board))
}

// writeTable sends rows as CSV, or as a workbook for ?format=xlsx
func writeTable(w http.ResponseWriter, r *http.Request, name, sheet string, fields []string, rows []export.Record) {
	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		data, err := export.XLSX(sheet, fields, rows)
		if err != nil {
			slog.Error("failed to build workbook", "file", name, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate spreadsheet. Check server logs.")
			return
		}
		setAttachment(w, xlsxContentType, name+".xlsx")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	setAttachment(w, "text/csv; charset=utf-8", name+".csv")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(export.CSV(fields, rows)))
}

func setAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}

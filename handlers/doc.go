// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the QuestBridge API.

# Handler Types

Each handler is a struct over a *ledger.Service:

  - ParticipantHandler: Registration, listing, status updates, deletion
  - EngagementHandler: Activity logging, log listing, leaderboard
  - DownloadHandler: CSV and XLSX exports

Handlers are created via constructor functions:

	participants := handlers.NewParticipantHandler(svc)

# Errors

Ledger errors map onto status codes in one place (writeLedgerError):

	*ledger.ValidationError -> 400 with the field and reason
	ledger.ErrConflict      -> 409 "Email already registered."
	ledger.ErrNotFound      -> 404 "Participant not found."
	anything else           -> 500 with a fixed message; the cause is logged

# Downloads

CSV is the default. Append ?format=xlsx for a single-sheet workbook with the
same columns. The participant and engagement downloads answer 404 with a JSON
message when there are no rows; the leaderboard download always returns the
header line.
*/
package handlers

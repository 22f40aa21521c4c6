// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the QuestBridge API.

# Route Registration

NewRouter creates a handler with all endpoints, wrapped in Recover, CORS and
Instrument:

	handler := router.NewRouter(svc, metrics)

# Endpoints

Health and service info:

	GET /health  - Liveness, plain "OK"
	GET /metrics - Prometheus metrics
	GET /api     - JSON status

Participants:

	POST   /api/participants      - Register (201, 400, 409)
	GET    /api/participants      - List, newest first
	PUT    /api/participants/{id} - Update status / ticket_type (200, 404)
	DELETE /api/participants/{id} - Delete (200, 404)

Engagement:

	POST /api/engagement  - Log a scored activity (201, 400)
	GET  /api/engagement  - All logs with participant names
	GET  /api/leaderboard - Scores per registered participant

Downloads (CSV, or ?format=xlsx):

	GET /api/download/participants - participants_list.csv, 404 if empty
	GET /api/download/engagement   - engagement_logs.csv, 404 if empty
	GET /api/download/leaderboard  - event_leaderboard.csv, header only if empty
*/
package router

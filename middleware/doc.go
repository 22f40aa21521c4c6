// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/participants", middleware.WithLogging(handler))

Each request gets an X-Request-ID (taken from the request or generated) that
is echoed on the response and attached to the start and completion lines.

# Metrics and Recovery

Instrument reports route pattern, status and latency to an Observer after
the mux has matched the request. Recover answers a panicking handler with a
JSON 500:

	handler := middleware.Recover(middleware.CORS(middleware.Instrument(m, mux)))

# CORS Middleware

Reflects the request Origin (or * when absent), allows GET, POST, PUT, DELETE
and OPTIONS, and exposes Content-Disposition so browsers can read download
file names.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.RegisterParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware

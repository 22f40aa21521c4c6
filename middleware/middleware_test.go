// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/questbridge/server/models"
)

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
		write      bool
	}{
		{"OK", http.StatusOK, "ok", true},
		{"Created", http.StatusCreated, `{"message":"Participant registered successfully","id":1}`, true},
		{"Conflict", http.StatusConflict, `{"error":"Conflict"}`, true},
		{"implicit 200", http.StatusOK, "implicit", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				if tc.write {
					w.WriteHeader(tc.statusCode)
				}
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/participants", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/api/participants", nil))

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected UUID request id, got %q", id)
		}
	})

	t.Run("echoed when supplied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/participants", nil)
		req.Header.Set(RequestIDHeader, "kiosk-42")
		w := httptest.NewRecorder()

		handler(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "kiosk-42" {
			t.Errorf("Expected echoed request id, got %q", got)
		}
	})
}

type recordedObservation struct {
	route string
	code  int
}

type fakeObserver struct {
	seen []recordedObservation
}

func (o *fakeObserver) ObserveRequest(route string, code int, d time.Duration) {
	o.seen = append(o.seen, recordedObservation{route: route, code: code})
}

func TestInstrument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/participants/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	obs := &fakeObserver{}
	handler := Instrument(obs, mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/api/participants/7", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	want := []recordedObservation{
		{route: "DELETE /api/participants/{id}", code: http.StatusNotFound},
		{route: "unmatched", code: http.StatusNotFound},
	}
	if len(obs.seen) != len(want) {
		t.Fatalf("Expected %d observations, got %d", len(want), len(obs.seen))
	}
	for i := range want {
		if obs.seen[i] != want[i] {
			t.Errorf("observation %d = %+v, want %+v", i, obs.seen[i], want[i])
		}
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database exploded")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/leaderboard", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "exploded") {
		t.Error("Expected panic value to stay out of the response")
	}

	t.Run("abort handler is re-raised", func(t *testing.T) {
		aborting := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("Expected ErrAbortHandler to propagate, got %v", rec)
			}
		}()
		aborting.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "created response",
			statusCode: http.StatusCreated,
			data:       models.CreatedResponse{Message: "Engagement logged successfully", ID: 12},
			expected:   `{"message":"Engagement logged successfully","id":12}`,
		},
		{
			name:       "status response",
			statusCode: http.StatusOK,
			data:       models.StatusResponse{Status: "ok", Message: "QuestBridge API is running"},
			expected:   `{"status":"ok","message":"QuestBridge API is running"}`,
		},
		{
			name:       "error without message",
			statusCode: http.StatusNotFound,
			data:       models.ErrorResponse{Error: "Not Found"},
			expected:   `{"error":"Not Found"}`,
		},
		{
			name:       "empty list",
			statusCode: http.StatusOK,
			data:       []models.Participant{},
			expected:   `[]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			// Encode appends a newline
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		statusCode    int
		message       string
		expectedError string
	}{
		{http.StatusBadRequest, "name is required", "Bad Request"},
		{http.StatusNotFound, "Participant not found.", "Not Found"},
		{http.StatusConflict, "Email already registered.", "Conflict"},
		{http.StatusInternalServerError, "Failed to fetch participants", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.expectedError, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"name":"Alice","email":"a@x.com","unknown_field":"ignored"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.RegisterParticipantRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Name != "Alice" || parsed.Email != "a@x.com" {
			t.Errorf("Unexpected parse result: %+v", parsed)
		}
	})

	t.Run("pointer fields distinguish omitted", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/", strings.NewReader(`{"status":"approved"}`))

		var parsed models.UpdateParticipantRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatal(err)
		}
		if parsed.Status == nil || *parsed.Status != "approved" {
			t.Errorf("Expected status approved, got %v", parsed.Status)
		}
		if parsed.TicketType != nil {
			t.Errorf("Expected omitted ticket_type to stay nil, got %q", *parsed.TicketType)
		}
	})

	t.Run("details kept raw", func(t *testing.T) {
		body := `{"participant_email":"a@x.com","activity_type":"Quiz Game","details":{"total_questions":5},"score":3}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.LogEngagementRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatal(err)
		}
		if string(parsed.Details) != `{"total_questions":5}` {
			t.Errorf("details = %s", parsed.Details)
		}
		if parsed.Score == nil || *parsed.Score != 3 {
			t.Errorf("score = %v", parsed.Score)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.RegisterParticipantRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.RegisterParticipantRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/participants", nil)
		req.Header.Set("Origin", "http://localhost:8081")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8081" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("A reflected origin must not be granted credentials")
		}
		if w.Header().Get("Vary") != "Origin" {
			t.Error("Expected Vary: Origin for a reflected origin")
		}

		methods := w.Header().Get("Access-Control-Allow-Methods")
		for _, method := range []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"} {
			if !strings.Contains(methods, method) {
				t.Errorf("Expected %s in allowed methods", method)
			}
		}
	})

	t.Run("downloads expose Content-Disposition", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/download/participants", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
			t.Error("Expected Content-Disposition in exposed headers")
		}
	})

	t.Run("wildcard without credentials", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/participants", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Credentials must not be allowed with a wildcard origin")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For chain",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "203.0.113.195",
		},
		{
			name:       "X-Forwarded-For wins over X-Real-IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "RemoteAddr port stripped",
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/questbridge/server/cliparse"
	"github.com/questbridge/server/db"
	"github.com/questbridge/server/ledger"
	"github.com/questbridge/server/store"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir and is closed when the test ends.
func SetupTestDB(t *testing.T) *store.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questbridge_test.sqlite")
	st, err := store.OpenSQL(context.Background(), db.DialectSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// SetupTestService returns a ledger service over a fresh test database
func SetupTestService(t *testing.T) (*ledger.Service, *store.SQLStore) {
	t.Helper()

	st := SetupTestDB(t)
	return ledger.NewService(st, nil), st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseType: cliparse.TypeSQLite,
		DatabaseURL:  ":memory:",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// CreateTestParticipant inserts a participant directly and returns its ID
// status should be "pending", "approved", "checked_in" or "cancelled"
func CreateTestParticipant(t *testing.T, st *store.SQLStore, name, email, status string) int64 {
	t.Helper()

	var id int64
	err := st.DB().QueryRow(`
		INSERT INTO participants (name, email, organization, phone, ticket_type, status, created_at)
		VALUES (?, ?, '', '', 'general', ?, ?)
		RETURNING id
	`, name, email, status, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return id
}

// LogTestEngagement inserts an engagement log directly and returns its ID
func LogTestEngagement(t *testing.T, st *store.SQLStore, email, activity string, score int) int64 {
	t.Helper()

	var id int64
	err := st.DB().QueryRow(`
		INSERT INTO engagement_logs (participant_email, activity_type, details, score, timestamp)
		VALUES (?, ?, NULL, ?, ?)
		RETURNING id
	`, email, activity, score, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test engagement log: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/next-read/cliparse"
	"github.com/danielhkuo/next-read/db"
	"github.com/danielhkuo/next-read/models"
)

// SetupTestDB creates a fresh sqlite database under t.TempDir with the
// full schema. A single connection keeps same-file writers serialized,
// which is also what the production server does for sqlite.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "next-read-test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3419,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		OperatorKeySalt: "test-operator-salt",
	}
}

// AddTestNomination inserts a nomination row and returns it
func AddTestNomination(t *testing.T, conn *sql.DB, communityID, month, title, author, userID string) models.Nomination {
	t.Helper()

	nom := models.Nomination{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		Month:       month,
		Title:       title,
		Author:      author,
		NominatedBy: userID,
		NominatedAt: time.Now().UTC(),
	}

	_, err := conn.Exec(`
		INSERT INTO nomination (id, community_id, month, title, author, nominated_by, nominated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, nom.ID, nom.CommunityID, nom.Month, nom.Title, nom.Author, nom.NominatedBy, nom.NominatedAt)
	if err != nil {
		t.Fatalf("Failed to create test nomination: %v", err)
	}

	return nom
}

// CreateTestPoll inserts a poll with the given options and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, communityID, month string, phase int, multiVote, active bool, options []string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, community_id, month, phase, multi_vote, active, parent_poll_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, 'test-operator', $7)
	`, pollID, communityID, month, phase, multiVote, active, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, title := range options {
		_, err := conn.Exec(`
			INSERT INTO poll_option (poll_id, option_index, title)
			VALUES ($1, $2, $3)
		`, pollID, i, title)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return pollID
}

// CastTestVote inserts a vote row directly
func CastTestVote(t *testing.T, conn *sql.DB, pollID, voterID string, optionIndex int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, option_index, voter_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), pollID, optionIndex, voterID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
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

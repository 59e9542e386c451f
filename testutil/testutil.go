// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/billdesk/cliparse"
	"github.com/danielhkuo/billdesk/db"
	"github.com/danielhkuo/billdesk/models"
)

// TestPassword is the plaintext password for every user created by
// CreateTestUser.
const TestPassword = "password123"

var (
	testHashOnce sync.Once
	testHash     string
)

// testPasswordHash computes the bcrypt hash of TestPassword once per run.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		testHash = string(hash)
	})
	return testHash
}

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temp directory. The pool is limited to one connection so
// transactions serialize instead of tripping over SQLite's single writer.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "billdesk-test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabasePath: ":memory:",
		JWTSecret:    "test-jwt-secret",
		TokenHours:   1,
		AssignCap:    3,
	}
}

// CreateTestUser inserts a user and returns its ID. The email is derived
// from the name and a random suffix to stay unique.
func CreateTestUser(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	userID := uuid.New().String()
	email := name + "-" + userID[:8] + "@example.com"

	_, err := conn.Exec(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, name, email, testPasswordHash(t), time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// billSeq makes created_at strictly increasing across test bills so
// ordering assertions are deterministic within a single second.
var billSeq atomic.Int64

// CreateTestBill inserts an unassigned bill in the given stage and returns
// its ID. The submission timestamp is left unset.
func CreateTestBill(t *testing.T, conn *sql.DB, stage models.Stage) string {
	t.Helper()
	return insertTestBill(t, conn, stage, nil)
}

// CreateTestSubmittedBill inserts an unassigned Submitted bill carrying the
// given submission timestamp.
func CreateTestSubmittedBill(t *testing.T, conn *sql.DB, submittedAt int64) string {
	t.Helper()
	return insertTestBill(t, conn, models.StageSubmitted, &submittedAt)
}

func insertTestBill(t *testing.T, conn *sql.DB, stage models.Stage, submittedAt *int64) string {
	t.Helper()

	billID := uuid.New().String()
	reference := "BILL-" + billID[:8]
	createdAt := billSeq.Add(1)

	_, err := conn.Exec(`
		INSERT INTO bills (id, reference, bill_date, stage, submitted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, billID, reference, "2026-04-30", stage, submittedAt, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test bill: %v", err)
	}

	return billID
}

// AssignTestBill directly assigns a bill to a user, bypassing the
// coordinator. Used to set up pre-existing assignments.
func AssignTestBill(t *testing.T, conn *sql.DB, billID, userID string) {
	t.Helper()

	res, err := conn.Exec(`UPDATE bills SET assigned_to = ? WHERE id = ?`, userID, billID)
	if err != nil {
		t.Fatalf("Failed to assign test bill: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("Expected to assign 1 bill, affected %d", n)
	}
}

// AssignedCount returns how many bills are assigned to the user.
func AssignedCount(t *testing.T, conn *sql.DB, userID string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM bills WHERE assigned_to = ?`, userID).Scan(&count); err != nil {
		t.Fatalf("Failed to count assigned bills: %v", err)
	}
	return count
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

// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/billdesk/models"
	"github.com/danielhkuo/billdesk/testutil"
)

func TestHealthCheck(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))

	testutil.AssertStatus(t, w, 200)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %s", w.Body.String())
	}
}

func TestRootBanner(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/", nil, nil))

	testutil.AssertStatus(t, w, 200)
	if w.Body.String() != "billdesk API v1" {
		t.Errorf("Unexpected banner: %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	// Browser preflight must be answered without hitting route matching.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("OPTIONS", "/bills", nil, map[string]string{
		"Origin": "http://localhost:5173",
	}))

	testutil.AssertStatus(t, w, 200)
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Errorf("Expected origin echoed back, got %q", origin)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); methods == "" {
		t.Error("Expected allowed methods on the preflight response")
	}

	// Normal requests carry the CORS headers too.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, map[string]string{
		"Origin": "http://localhost:5173",
	}))

	testutil.AssertStatus(t, w, 200)
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Errorf("Expected CORS headers on a served route, got origin %q", origin)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/metrics", nil, nil))

	testutil.AssertStatus(t, w, 200)
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	private := []struct {
		method, path string
	}{
		{"POST", "/bills"},
		{"PUT", "/bills/some-id/stage"},
		{"POST", "/bills/some-id/assign"},
		{"POST", "/assignments"},
	}

	for _, route := range private {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(route.method, route.path, map[string]string{}, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without a token, got %d", route.method, route.path, w.Code)
		}
	}
}

// TestBillLifecycle walks the full flow through the router: register, create
// a bill, submit it, claim it, and read it back.
func TestBillLifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	mux := NewRouter(conn, testutil.GetTestConfig())

	// Register.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}, nil))
	testutil.AssertStatus(t, w, 201)

	var reg models.RegisterResponse
	testutil.AssertJSON(t, w, &reg)
	authed := map[string]string{"Authorization": "Bearer " + reg.Token}

	// Create a bill.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/bills", models.CreateBillRequest{
		Reference: "INV-2026-0001", Date: "2026-08-01",
	}, authed))
	testutil.AssertStatus(t, w, 201)

	var created models.CreateBillResponse
	testutil.AssertJSON(t, w, &created)
	billID := created.Bill.ID

	// Submit it.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PUT", "/bills/"+billID+"/stage", models.TransitionStageRequest{
		Stage: models.StageSubmitted,
	}, authed))
	testutil.AssertStatus(t, w, 200)

	// Claim the next bill; with no user_id in the body it goes to the caller.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/assignments", nil, authed))
	testutil.AssertStatus(t, w, 200)

	var assigned models.AssignBillResponse
	testutil.AssertJSON(t, w, &assigned)
	if assigned.Bill.Bill.ID != billID {
		t.Errorf("Expected bill %s, got %s", billID, assigned.Bill.Bill.ID)
	}
	if assigned.Bill.Bill.SubmittedAt == nil {
		t.Error("Expected a submission timestamp after claiming a Submitted bill")
	}

	// Read it back with the assignee resolved.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/bills/"+billID, nil, nil))
	testutil.AssertStatus(t, w, 200)

	var detail models.BillDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.Assignee == nil || detail.Assignee.ID != reg.User.ID {
		t.Error("Expected the registering user as assignee")
	}
	if detail.Bill.Stage != models.StageSubmitted {
		t.Errorf("Expected stage unchanged by assignment, got %s", detail.Bill.Stage)
	}
}

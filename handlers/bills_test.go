// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/billdesk/models"
	"github.com/danielhkuo/billdesk/testutil"
)

func TestCreateBill(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	req := testutil.MakeRequest("POST", "/bills", models.CreateBillRequest{
		Reference: "INV-2026-0042",
		Date:      "2026-08-01",
	}, nil)
	w := httptest.NewRecorder()
	h.CreateBill(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.CreateBillResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Bill.Stage != models.StageDraft {
		t.Errorf("Expected new bills in Draft, got %s", resp.Bill.Stage)
	}
	if resp.Bill.AssignedTo != nil {
		t.Error("Expected new bills to be unassigned")
	}
	if resp.Bill.SubmittedAt != nil {
		t.Error("Expected no submission timestamp on a new bill")
	}
}

func TestCreateBillReferenceValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	cases := []struct {
		name      string
		reference string
		status    int
	}{
		{"too short", "ABCD", 400},
		{"minimum length", "ABCDE", 201},
		{"maximum length", strings.Repeat("A", 100), 201},
		{"too long", strings.Repeat("A", 101), 400},
		{"illegal character", "INV 2026", 400},
		{"underscore", "INV_2026", 400},
		{"hyphenated", "INV-2026-0001", 201},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/bills", models.CreateBillRequest{
				Reference: tc.reference,
				Date:      "2026-08-01",
			}, nil)
			w := httptest.NewRecorder()
			h.CreateBill(w, req)
			testutil.AssertStatus(t, w, tc.status)
		})
	}
}

func TestCreateBillDateValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	for _, date := range []string{"", "08/01/2026", "2026-13-01", "2026-8-1"} {
		req := testutil.MakeRequest("POST", "/bills", models.CreateBillRequest{
			Reference: "INV-2026-0099",
			Date:      date,
		}, nil)
		w := httptest.NewRecorder()
		h.CreateBill(w, req)
		testutil.AssertStatus(t, w, 400)
	}
}

func TestCreateBillDuplicateReference(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	body := models.CreateBillRequest{Reference: "INV-2026-0001", Date: "2026-08-01"}

	w := httptest.NewRecorder()
	h.CreateBill(w, testutil.MakeRequest("POST", "/bills", body, nil))
	testutil.AssertStatus(t, w, 201)

	w = httptest.NewRecorder()
	h.CreateBill(w, testutil.MakeRequest("POST", "/bills", body, nil))
	testutil.AssertStatus(t, w, 409)
}

func TestGetBill(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	userID := testutil.CreateTestUser(t, conn, "Heidi")
	billID := testutil.CreateTestBill(t, conn, models.StageDraft)
	testutil.AssignTestBill(t, conn, billID, userID)

	req := testutil.MakeRequest("GET", "/bills/"+billID, nil, nil)
	req.SetPathValue("id", billID)
	w := httptest.NewRecorder()
	h.GetBill(w, req)

	testutil.AssertStatus(t, w, 200)

	var detail models.BillDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.Bill.ID != billID {
		t.Errorf("Expected bill %s, got %s", billID, detail.Bill.ID)
	}
	if detail.Assignee == nil || detail.Assignee.ID != userID {
		t.Error("Expected the assignee to be resolved")
	}

	req = testutil.MakeRequest("GET", "/bills/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	h.GetBill(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestListBills(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	testutil.CreateTestBill(t, conn, models.StageDraft)
	testutil.CreateTestBill(t, conn, models.StageSubmitted)
	testutil.CreateTestBill(t, conn, models.StageSubmitted)

	w := httptest.NewRecorder()
	h.ListBills(w, testutil.MakeRequest("GET", "/bills", nil, nil))
	testutil.AssertStatus(t, w, 200)

	var resp models.ListBillsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 3 {
		t.Errorf("Expected 3 bills, got %d", resp.Count)
	}

	w = httptest.NewRecorder()
	h.ListBills(w, testutil.MakeRequest("GET", "/bills?stage=Submitted", nil, nil))
	testutil.AssertStatus(t, w, 200)
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Errorf("Expected 2 Submitted bills, got %d", resp.Count)
	}

	w = httptest.NewRecorder()
	h.ListBills(w, testutil.MakeRequest("GET", "/bills?stage=Bogus", nil, nil))
	testutil.AssertStatus(t, w, 400)
}

func TestListBillsDatabaseError(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewBillHandler(conn)
	conn.Close()

	w := httptest.NewRecorder()
	h.ListBills(w, testutil.MakeRequest("GET", "/bills", nil, nil))
	testutil.AssertStatus(t, w, 500)
}

func TestTransitionStage(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	billID := testutil.CreateTestBill(t, conn, models.StageDraft)

	req := testutil.MakeRequest("PUT", "/bills/"+billID+"/stage", models.TransitionStageRequest{
		Stage: models.StageSubmitted,
	}, nil)
	req.SetPathValue("id", billID)
	w := httptest.NewRecorder()
	h.TransitionStage(w, req)

	testutil.AssertStatus(t, w, 200)

	var bill models.Bill
	testutil.AssertJSON(t, w, &bill)
	if bill.Stage != models.StageSubmitted {
		t.Errorf("Expected Submitted, got %s", bill.Stage)
	}
	if bill.SubmittedAt != nil {
		t.Error("Stage transition must not stamp the submission timestamp")
	}
	if bill.AssignedTo != nil {
		t.Error("Stage transition must not touch the assignment")
	}
}

func TestTransitionStageErrors(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewBillHandler(conn)

	billID := testutil.CreateTestBill(t, conn, models.StageDraft)

	// Unknown stage label.
	req := testutil.MakeRequest("PUT", "/bills/"+billID+"/stage", models.TransitionStageRequest{
		Stage: models.Stage("Bogus"),
	}, nil)
	req.SetPathValue("id", billID)
	w := httptest.NewRecorder()
	h.TransitionStage(w, req)
	testutil.AssertStatus(t, w, 400)

	// Missing bill.
	req = testutil.MakeRequest("PUT", "/bills/missing/stage", models.TransitionStageRequest{
		Stage: models.StageApproved,
	}, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	h.TransitionStage(w, req)
	testutil.AssertStatus(t, w, 404)
}

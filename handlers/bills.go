// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/billdesk/middleware"
	"github.com/danielhkuo/billdesk/models"
)

type BillHandler struct {
	db *sql.DB
}

func NewBillHandler(db *sql.DB) *BillHandler {
	return &BillHandler{db: db}
}

// CreateBill handles POST /bills
// Bills are always created unassigned in Draft stage; stage changes go
// through the transition endpoint.
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateReference(req.Reference); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	bill := models.Bill{
		ID:        uuid.New().String(),
		Reference: req.Reference,
		Date:      req.Date,
		Stage:     models.StageDraft,
		CreatedAt: time.Now().Unix(),
	}

	_, err := h.db.Exec(`
		INSERT INTO bills (id, reference, bill_date, stage, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, bill.ID, bill.Reference, bill.Date, bill.Stage, bill.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "bills.reference") {
			middleware.ErrorResponse(w, http.StatusConflict, "Reference already exists")
			return
		}
		slog.Error("failed to insert bill", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	slog.Info("bill created", "bill_id", bill.ID, "reference", bill.Reference)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateBillResponse{
		Bill: bill,
	})
}

// GetBill handles GET /bills/{id}
// Returns the bill with its assignee resolved, if any.
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("id")
	if billID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bill id is required")
		return
	}

	var detail models.BillDetail
	err := h.db.QueryRow(`
		SELECT id, reference, bill_date, stage, assigned_to, submitted_at, created_at
		FROM bills WHERE id = ?
	`, billID).Scan(
		&detail.Bill.ID, &detail.Bill.Reference, &detail.Bill.Date, &detail.Bill.Stage,
		&detail.Bill.AssignedTo, &detail.Bill.SubmittedAt, &detail.Bill.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Bill not found")
		return
	}
	if err != nil {
		slog.Error("failed to query bill", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if detail.Bill.AssignedTo != nil {
		var user models.User
		err := h.db.QueryRow(`
			SELECT id, name, email, created_at FROM users WHERE id = ?
		`, *detail.Bill.AssignedTo).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
		if err != nil {
			slog.Error("failed to resolve assignee", "error", err, "bill_id", billID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		detail.Assignee = &user
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// ListBills handles GET /bills with an optional ?stage= filter
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, reference, bill_date, stage, assigned_to, submitted_at, created_at
		FROM bills`
	var args []interface{}

	if stageParam := r.URL.Query().Get("stage"); stageParam != "" {
		stage := models.Stage(stageParam)
		if !stage.Valid() {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown stage: "+stageParam)
			return
		}
		query += ` WHERE stage = ?`
		args = append(args, stage)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query bills", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		var bill models.Bill
		if err := rows.Scan(
			&bill.ID, &bill.Reference, &bill.Date, &bill.Stage,
			&bill.AssignedTo, &bill.SubmittedAt, &bill.CreatedAt,
		); err != nil {
			slog.Error("failed to scan bill", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate bills", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListBillsResponse{
		Bills: bills,
		Count: len(bills),
	})
}

// TransitionStage handles PUT /bills/{id}/stage
// Stage progression is deliberately separate from assignment: it never
// touches assigned_to or submitted_at.
func (h *BillHandler) TransitionStage(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("id")
	if billID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bill id is required")
		return
	}

	var req models.TransitionStageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.Stage.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown stage: "+req.Stage.String())
		return
	}

	res, err := h.db.Exec(`UPDATE bills SET stage = ? WHERE id = ?`, req.Stage, billID)
	if err != nil {
		slog.Error("failed to update stage", "error", err, "bill_id", billID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update stage")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read update result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update stage")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Bill not found")
		return
	}

	var bill models.Bill
	err = h.db.QueryRow(`
		SELECT id, reference, bill_date, stage, assigned_to, submitted_at, created_at
		FROM bills WHERE id = ?
	`, billID).Scan(
		&bill.ID, &bill.Reference, &bill.Date, &bill.Stage,
		&bill.AssignedTo, &bill.SubmittedAt, &bill.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to reload bill", "error", err, "bill_id", billID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("bill stage changed", "bill_id", billID, "stage", bill.Stage)

	middleware.JSONResponse(w, http.StatusOK, bill)
}

// isUniqueViolation checks if err is a UNIQUE constraint failure on the
// given column (e.g. "users.email"). The driver exposes no typed error
// for this; match on the message.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

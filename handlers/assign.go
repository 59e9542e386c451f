// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/billdesk/assignment"
	"github.com/danielhkuo/billdesk/metrics"
	"github.com/danielhkuo/billdesk/middleware"
	"github.com/danielhkuo/billdesk/models"
)

type AssignHandler struct {
	coordinator *assignment.Coordinator
}

func NewAssignHandler(coordinator *assignment.Coordinator) *AssignHandler {
	return &AssignHandler{coordinator: coordinator}
}

// AssignBill handles POST /bills/{id}/assign (explicit assignment)
func (h *AssignHandler) AssignBill(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("id")
	if billID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bill id is required")
		return
	}
	h.assign(w, r, billID)
}

// AssignNext handles POST /assignments (implicit selection: the coordinator
// picks the earliest eligible unassigned bill)
func (h *AssignHandler) AssignNext(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "")
}

func (h *AssignHandler) assign(w http.ResponseWriter, r *http.Request, billID string) {
	// An empty body means "assign to me"; only malformed JSON is rejected.
	var req models.AssignBillRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Default to the authenticated caller.
	userID := req.UserID
	if userID == "" {
		userID = middleware.GetUserID(r.Context())
	}
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	detail, err := h.coordinator.Assign(r.Context(), userID, billID)
	metrics.AssignmentsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		writeAssignError(w, err, userID, billID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AssignBillResponse{
		Assigned: true,
		Bill:     *detail,
	})
}

// writeAssignError maps the coordinator's taxonomy to transport statuses.
// Permanent business-rule violations get 4xx; an exhausted retry budget is
// the one retryable condition and gets 503.
func writeAssignError(w http.ResponseWriter, err error, userID, billID string) {
	switch {
	case errors.Is(err, assignment.ErrUserNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
	case errors.Is(err, assignment.ErrBillNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "No assignable bill found")
	case errors.Is(err, assignment.ErrUserLimitExceeded):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, assignment.ErrInvalidStage):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, assignment.ErrAlreadyAssigned):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, assignment.ErrConflict):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("assignment failed", "error", err, "user_id", userID, "bill_id", billID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Assignment failed")
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, assignment.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, assignment.ErrBillNotFound):
		return "bill_not_found"
	case errors.Is(err, assignment.ErrUserLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, assignment.ErrInvalidStage):
		return "invalid_stage"
	case errors.Is(err, assignment.ErrAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, assignment.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

package models

import (
	"errors"
	"regexp"
)

// Reference format: 5-100 chars, letters, digits, and hyphens only.
var referencePattern = regexp.MustCompile(`^[A-Za-z0-9-]{5,100}$`)

var ErrInvalidReference = errors.New("reference must be 5-100 characters of letters, digits, and hyphens")

// ValidateReference checks a bill reference against the required format.
func ValidateReference(ref string) error {
	if !referencePattern.MatchString(ref) {
		return ErrInvalidReference
	}
	return nil
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateBillRequest struct {
	Reference string `json:"reference"`
	Date      string `json:"date"` // ISO date, e.g. "2026-04-30"
}

type TransitionStageRequest struct {
	Stage Stage `json:"stage"`
}

// AssignBillRequest is the body for both explicit and implicit assignment.
// UserID defaults to the authenticated user when omitted.
type AssignBillRequest struct {
	UserID string `json:"user_id"`
}

// Response types

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type CreateBillResponse struct {
	Bill Bill `json:"bill"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
	Count int    `json:"count"`
}

type AssignBillResponse struct {
	Assigned bool       `json:"assigned"`
	Bill     BillDetail `json:"bill"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	CreatedAt    int64  `json:"created_at"`
}

type Bill struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	Date        string  `json:"date"`
	Stage       Stage   `json:"stage"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	SubmittedAt *int64  `json:"submitted_at,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

// BillDetail is a bill with its assignee resolved.
type BillDetail struct {
	Bill     Bill  `json:"bill"`
	Assignee *User `json:"assignee,omitempty"`
}

// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the billdesk API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - UserHandler: registration, login, user and per-user bill lookup
  - BillHandler: bill CRUD and explicit stage transitions
  - AssignHandler: the thin transport layer over assignment.Coordinator

# Bill Lifecycle

Bills are created unassigned in Draft stage:

	POST /bills              → CreateBill
	GET  /bills              → ListBills (?stage= filter)
	GET  /bills/{id}         → GetBill (with resolved assignee)
	PUT  /bills/{id}/stage   → TransitionStage

Stage transitions never touch assignment state; assignment never changes
stage. The two concerns meet only in the coordinator's eligibility rule
(only Draft and Submitted bills are assignable).

# Assignment

	POST /bills/{id}/assign  → AssignBill (explicit)
	POST /assignments        → AssignNext (implicit selection)

Both accept {"user_id": ...}, defaulting to the authenticated user, and map
the coordinator's failure taxonomy to transport statuses:

	UserNotFound, BillNotFound            → 404
	UserLimitExceeded, InvalidStage,
	AlreadyAssigned                       → 409
	ConcurrencyConflict (retries spent)   → 503

# Accounts

	POST /auth/register  → Register (bcrypt hash, returns JWT)
	POST /auth/login     → Login
	GET  /users/{id}     → GetUser
	GET  /users/{id}/bills → GetUserBills

Mutating routes require a Bearer token (middleware.RequireUser).
*/
package handlers

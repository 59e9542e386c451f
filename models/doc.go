// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Bill: an invoice tracked through a lifecycle of stages, optionally
    assigned to a user
  - User: a registered account that bills can be assigned to
  - Stage: closed enumeration of bill lifecycle states

# Stages

	Draft → Submitted → Approved → Paying → Paid
	                  ↘ On Hold / Rejected

Only Draft and Submitted bills are assignable; use Stage.Assignable rather
than comparing labels at call sites.

# Request Types

  - RegisterRequest / LoginRequest: account credentials
  - CreateBillRequest: reference, date
  - TransitionStageRequest: stage
  - AssignBillRequest: user_id (optional, defaults to authenticated user)

# Response Types

  - RegisterResponse / LoginResponse: user, token
  - CreateBillResponse: bill
  - ListBillsResponse: bills, count
  - AssignBillResponse: assigned, bill (with resolved assignee)
  - ErrorResponse: error, message

# Validation

Bill references are 5-100 characters of letters, digits, and hyphens,
checked by ValidateReference.
*/
package models

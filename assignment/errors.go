// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignment

import "errors"

// Sentinel errors returned by the Coordinator. All but ErrConflict are
// permanent: retrying the same request cannot succeed.
var (
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrBillNotFound is returned when the bill does not exist, or when no
	// eligible unassigned bill is available for implicit selection.
	ErrBillNotFound = errors.New("bill not found")

	// ErrUserLimitExceeded is returned when the user already holds the
	// maximum number of assigned bills.
	ErrUserLimitExceeded = errors.New("user has reached the assigned bill limit")

	// ErrInvalidStage is returned when the bill's stage disallows assignment.
	ErrInvalidStage = errors.New("bill stage does not allow assignment")

	// ErrAlreadyAssigned is returned when the bill already has an assignee.
	ErrAlreadyAssigned = errors.New("bill is already assigned")

	// ErrConflict is returned when a concurrent race could not be resolved
	// within the retry budget. The caller may retry the whole operation.
	ErrConflict = errors.New("assignment conflict, retry later")
)

// errLostRace marks an attempt that lost a claim race and should be retried.
// Never returned to callers.
var errLostRace = errors.New("lost claim race")

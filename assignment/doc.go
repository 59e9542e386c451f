// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assignment implements the bill assignment coordinator.

Assign(ctx, userID, billID) atomically claims one bill for a user:

 1. The user must exist.
 2. The user must hold fewer than Config.Cap assigned bills.
 3. The target bill (explicit billID, or the earliest eligible candidate
    when billID is empty) must exist, be in an assignable stage (Draft or
    Submitted), and be unassigned.
 4. The claim is a conditional UPDATE guarded on assigned_to IS NULL; a
    zero-row result means another request won the race.
 5. After the write the user's count is re-verified before commit.

Implicit selection orders candidates by submission timestamp ascending
(nulls last) then creation time ascending: bills already in the Submitted
queue are handed out first, oldest first, then Draft bills by age.

Assignment never changes a bill's stage. Claiming a Submitted bill that has
no submission timestamp stamps it with the current time; Draft bills are
left unstamped.

# Concurrency

Many requests may race on the same user or the same bill; the database is
the only coordination point. The conditional update is the authoritative
guard, the in-transaction counts are preconditions, and the post-write
recount is a safety net. Lost races and SQLite lock contention are retried
up to Config.MaxAttempts; exhaustion returns ErrConflict, which callers
should surface as a retryable condition. The permanent errors
(ErrUserNotFound, ErrBillNotFound, ErrUserLimitExceeded, ErrInvalidStage,
ErrAlreadyAssigned) are never retried.

# Configuration

Config{Cap, MaxAttempts} is injected so tests can vary the cap without
touching transaction logic. The zero value gets production defaults (3, 3).
*/
package assignment

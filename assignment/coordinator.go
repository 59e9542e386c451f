// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignment

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/billdesk/metrics"
	"github.com/danielhkuo/billdesk/models"
)

// candidateScanLimit bounds the implicit-selection query. If every candidate
// in one fetch is claimed by concurrent requests, the whole attempt retries.
const candidateScanLimit = 10

// Config tunes the Coordinator. The zero value is replaced with defaults.
type Config struct {
	// Cap is the maximum number of bills one user may hold (default 3).
	Cap int
	// MaxAttempts bounds transaction retries after lost races (default 3).
	MaxAttempts int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{Cap: 3, MaxAttempts: 3}
}

// Coordinator atomically assigns bills to users. It holds no state outside
// the database; any number of instances may run against the same store.
type Coordinator struct {
	db  *sql.DB
	cfg Config
}

// NewCoordinator creates a Coordinator over the given database.
func NewCoordinator(db *sql.DB, cfg Config) *Coordinator {
	if cfg.Cap <= 0 {
		cfg.Cap = DefaultConfig().Cap
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Coordinator{db: db, cfg: cfg}
}

// Assign claims one bill for userID. With a billID the bill is validated
// (exists, assignable stage, unassigned) and claimed; with an empty billID
// the earliest eligible unassigned bill is selected: Submitted bills first
// by oldest submission, then Draft bills by age.
//
// The claim is a conditional update guarded on the bill still being
// unassigned, performed inside a transaction that also checks the user's
// cap before and after the write. Attempts that lose a race are retried up
// to Config.MaxAttempts; exhaustion surfaces ErrConflict. All other errors
// are permanent and returned without retry.
//
// On success the bill's stage is unchanged; if the bill is in Submitted
// stage with no submission timestamp, the timestamp is stamped now.
func (c *Coordinator) Assign(ctx context.Context, userID, billID string) (*models.BillDetail, error) {
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		detail, err := c.tryAssign(ctx, userID, billID)
		if err == nil {
			return detail, nil
		}
		if err == errLostRace || isBusy(err) {
			slog.Debug("assignment attempt lost race",
				"user_id", userID,
				"bill_id", billID,
				"attempt", attempt,
			)
			if attempt < c.cfg.MaxAttempts {
				metrics.AssignmentRetries.Inc()
			}
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

// tryAssign runs a single transactional attempt. It returns errLostRace when
// another request claimed the target first.
func (c *Coordinator) tryAssign(ctx context.Context, userID, billID string) (*models.BillDetail, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// User must exist before anything else is looked at.
	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// Capacity check inside the transaction.
	count, err := assignedCount(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if count >= c.cfg.Cap {
		return nil, ErrUserLimitExceeded
	}

	now := time.Now().Unix()

	if billID != "" {
		return c.assignExplicit(ctx, tx, userID, billID, now)
	}
	return c.assignImplicit(ctx, tx, userID, now)
}

// assignExplicit validates and claims a caller-chosen bill.
func (c *Coordinator) assignExplicit(ctx context.Context, tx *sql.Tx, userID, billID string, now int64) (*models.BillDetail, error) {
	var stage models.Stage
	var assignedTo *string
	err := tx.QueryRowContext(ctx,
		`SELECT stage, assigned_to FROM bills WHERE id = ?`, billID,
	).Scan(&stage, &assignedTo)
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}

	if !stage.Assignable() {
		return nil, ErrInvalidStage
	}
	if assignedTo != nil {
		return nil, ErrAlreadyAssigned
	}

	claimed, err := claimBill(ctx, tx, billID, userID, now, false)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Another transaction won between our read and the write. Retrying
		// the whole operation re-reads the bill and classifies properly.
		return nil, errLostRace
	}

	return c.commitClaim(ctx, tx, userID, billID)
}

// assignImplicit picks the earliest eligible unassigned bill and claims it,
// walking further candidates in the same attempt if the first is snatched.
func (c *Coordinator) assignImplicit(ctx context.Context, tx *sql.Tx, userID string, now int64) (*models.BillDetail, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM bills
		WHERE stage IN (?, ?) AND assigned_to IS NULL
		ORDER BY submitted_at IS NULL, submitted_at ASC, created_at ASC
		LIMIT ?
	`, models.StageDraft, models.StageSubmitted, candidateScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	if len(candidates) == 0 {
		return nil, ErrBillNotFound
	}

	for _, billID := range candidates {
		claimed, err := claimBill(ctx, tx, billID, userID, now, true)
		if err != nil {
			return nil, err
		}
		if claimed {
			return c.commitClaim(ctx, tx, userID, billID)
		}
	}

	// Every fetched candidate was claimed by someone else.
	return nil, errLostRace
}

// claimBill performs the conditional update that is the authoritative guard
// against double-claim: the row is written only if it is still unassigned
// (and, for implicit selection, still in an assignable stage). The
// submission timestamp is stamped only for Submitted bills without one.
func claimBill(ctx context.Context, tx *sql.Tx, billID, userID string, now int64, guardStage bool) (bool, error) {
	query := `
		UPDATE bills
		SET assigned_to = ?,
		    submitted_at = CASE WHEN stage = ? AND submitted_at IS NULL THEN ? ELSE submitted_at END
		WHERE id = ? AND assigned_to IS NULL`
	args := []interface{}{userID, models.StageSubmitted, now, billID}
	if guardStage {
		query += ` AND stage IN (?, ?)`
		args = append(args, models.StageDraft, models.StageSubmitted)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to claim bill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}
	return affected == 1, nil
}

// commitClaim re-verifies the cap after the write, loads the assigned bill
// with its user, and commits. The recount is a secondary safety net; the
// conditional update is the primary guard.
func (c *Coordinator) commitClaim(ctx context.Context, tx *sql.Tx, userID, billID string) (*models.BillDetail, error) {
	count, err := assignedCount(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if count > c.cfg.Cap {
		// A race slipped past the conditional update. Abort rather than
		// commit an over-cap state.
		return nil, errLostRace
	}

	detail, err := billDetail(ctx, tx, billID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("bill assigned", "bill_id", billID, "user_id", userID)
	return detail, nil
}

func assignedCount(ctx context.Context, tx *sql.Tx, userID string) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE assigned_to = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned bills: %w", err)
	}
	return count, nil
}

func billDetail(ctx context.Context, tx *sql.Tx, billID string) (*models.BillDetail, error) {
	var detail models.BillDetail
	var user models.User
	err := tx.QueryRowContext(ctx, `
		SELECT b.id, b.reference, b.bill_date, b.stage, b.assigned_to, b.submitted_at, b.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM bills b
		JOIN users u ON u.id = b.assigned_to
		WHERE b.id = ?
	`, billID).Scan(
		&detail.Bill.ID, &detail.Bill.Reference, &detail.Bill.Date, &detail.Bill.Stage,
		&detail.Bill.AssignedTo, &detail.Bill.SubmittedAt, &detail.Bill.CreatedAt,
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned bill: %w", err)
	}
	detail.Assignee = &user
	return &detail, nil
}

// isBusy reports whether err is a SQLite lock contention error, which is
// transient and safe to retry.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

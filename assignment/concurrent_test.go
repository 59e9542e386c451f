// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/billdesk/models"
	"github.com/danielhkuo/billdesk/testutil"
)

// TestConcurrentExplicitClaims races several users for the same bill and
// verifies exactly one wins.
func TestConcurrentExplicitClaims(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	const racers = 8

	billID := testutil.CreateTestBill(t, conn, models.StageDraft)
	users := make([]string, racers)
	for i := range users {
		users[i] = testutil.CreateTestUser(t, conn, "Racer")
	}

	coordinator := NewCoordinator(conn, DefaultConfig())

	var wins atomic.Int64
	var wg sync.WaitGroup
	for _, userID := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := coordinator.Assign(context.Background(), userID, billID)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrAlreadyAssigned), errors.Is(err, ErrConflict):
				// Expected for losers.
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(userID)
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins.Load(), "exactly one racer claims the bill")

	var assigned string
	err := conn.QueryRow(`SELECT assigned_to FROM bills WHERE id = ?`, billID).Scan(&assigned)
	require.NoError(t, err)
	assert.Contains(t, users, assigned)
}

// TestConcurrentImplicitSingleCandidate runs two implicit requests for the
// same user with exactly one eligible bill.
func TestConcurrentImplicitSingleCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID := testutil.CreateTestUser(t, conn, "Solo")
	testutil.CreateTestBill(t, conn, models.StageDraft)

	coordinator := NewCoordinator(conn, DefaultConfig())

	var wins atomic.Int64
	g := new(errgroup.Group)
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := coordinator.Assign(context.Background(), userID, "")
			switch {
			case err == nil:
				wins.Add(1)
				return nil
			case errors.Is(err, ErrBillNotFound), errors.Is(err, ErrConflict):
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(1), wins.Load(), "a single candidate is claimed once")
	assert.Equal(t, 1, testutil.AssignedCount(t, conn, userID))
}

// TestConcurrentAssignsRespectCap floods one user with implicit requests and
// verifies the workload cap holds.
func TestConcurrentAssignsRespectCap(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	const bills = 10

	userID := testutil.CreateTestUser(t, conn, "Greedy")
	for i := 0; i < bills; i++ {
		testutil.CreateTestBill(t, conn, models.StageDraft)
	}

	coordinator := NewCoordinator(conn, DefaultConfig())

	var wins atomic.Int64
	g := new(errgroup.Group)
	for i := 0; i < bills; i++ {
		g.Go(func() error {
			_, err := coordinator.Assign(context.Background(), userID, "")
			switch {
			case err == nil:
				wins.Add(1)
				return nil
			case errors.Is(err, ErrUserLimitExceeded), errors.Is(err, ErrConflict):
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	count := testutil.AssignedCount(t, conn, userID)
	assert.LessOrEqual(t, count, 3, "the cap is never exceeded")
	assert.Equal(t, int64(count), wins.Load(), "every win is a stored assignment")
}

// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageValid(t *testing.T) {
	for _, stage := range Stages {
		assert.True(t, stage.Valid(), "stage %s", stage)
	}

	assert.False(t, Stage("").Valid())
	assert.False(t, Stage("draft").Valid(), "labels are case sensitive")
	assert.False(t, Stage("Archived").Valid())
}

func TestStageAssignable(t *testing.T) {
	assignable := map[Stage]bool{
		StageDraft:     true,
		StageSubmitted: true,
		StageApproved:  false,
		StagePaying:    false,
		StageOnHold:    false,
		StageRejected:  false,
		StagePaid:      false,
	}

	for stage, want := range assignable {
		assert.Equal(t, want, stage.Assignable(), "stage %s", stage)
	}
}

func TestValidateReference(t *testing.T) {
	valid := []string{
		"ABCDE",
		"INV-2026-0001",
		strings.Repeat("A", 100),
		"abc12",
		"-----",
	}
	for _, ref := range valid {
		assert.NoError(t, ValidateReference(ref), "reference %q", ref)
	}

	invalid := []string{
		"",
		"ABCD",
		strings.Repeat("A", 101),
		"INV 2026",
		"INV_2026",
		"INV#2026",
		"ÏNV-2026",
	}
	for _, ref := range invalid {
		assert.ErrorIs(t, ValidateReference(ref), ErrInvalidReference, "reference %q", ref)
	}
}

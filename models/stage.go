// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Stage is the lifecycle state of a bill. The set is closed: anything not
// listed here is rejected at the API boundary and by the schema CHECK
// constraint.
type Stage string

const (
	StageDraft     Stage = "Draft"
	StageSubmitted Stage = "Submitted"
	StageApproved  Stage = "Approved"
	StagePaying    Stage = "Paying"
	StageOnHold    Stage = "On Hold"
	StageRejected  Stage = "Rejected"
	StagePaid      Stage = "Paid"
)

// Stages lists every valid stage, in lifecycle order.
var Stages = []Stage{
	StageDraft,
	StageSubmitted,
	StageApproved,
	StagePaying,
	StageOnHold,
	StageRejected,
	StagePaid,
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Assignable reports whether a bill in this stage may be assigned to a user.
// Only Draft and Submitted bills are assignable.
func (s Stage) Assignable() bool {
	return s == StageDraft || s == StageSubmitted
}

func (s Stage) String() string {
	return string(s)
}

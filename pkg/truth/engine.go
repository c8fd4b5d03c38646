// Package truth provides ground-truth resolution for gauntlet
// challenges: an Engine capability that expands recurrence rules
// into occurrences, and a Resolver that chooses between engine
// expansion and precomputed answers.
package truth

import (
	"context"
	"fmt"

	"digital.vasic.gauntlet/pkg/challenge"
)

// ExpandRequest carries the rule parameters sent to the Truth
// Engine for expansion.
type ExpandRequest struct {
	// RRule is the RFC 5545 recurrence rule string.
	RRule string `json:"rrule"`

	// DTStart is the local start timestamp.
	DTStart string `json:"dtstart"`

	// DurationMinutes is the event duration in minutes.
	DurationMinutes int `json:"duration_minutes"`

	// Timezone is the IANA timezone identifier.
	Timezone string `json:"timezone"`

	// Until is the optional termination bound, local time.
	Until string `json:"until,omitempty"`

	// MaxCount optionally caps the number of occurrences.
	MaxCount int `json:"max_count,omitempty"`
}

// Occurrence is one expanded event instance. Only the start
// instant is consumed for grading.
type Occurrence struct {
	// Start is the occurrence start, UTC RFC 3339.
	Start string `json:"start"`
}

// Engine is the Truth Engine capability: it authoritatively
// expands a recurrence rule into ordered occurrences. The
// concrete expansion algorithm lives outside this system.
type Engine interface {
	// Expand returns the ordered occurrences of the rule, or an
	// error when the rule, grammar, or timezone cannot be
	// handled.
	Expand(
		ctx context.Context,
		req ExpandRequest,
	) ([]Occurrence, error)
}

// ResolutionError reports a per-challenge ground-truth failure.
// It isolates the failing challenge: callers record it and move
// on to the rest of the batch.
type ResolutionError struct {
	// ChallengeID identifies the challenge that failed to
	// resolve.
	ChallengeID challenge.ID
	// Err is the underlying engine failure.
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf(
		"ground truth resolution failed for %s: %v",
		e.ChallengeID, e.Err,
	)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Package monitor captures evaluation lifecycle events and
// optionally broadcasts them to live WebSocket clients.
package monitor

import (
	"time"

	"digital.vasic.gauntlet/pkg/challenge"
)

// EventType represents the type of evaluation event.
type EventType string

const (
	// EventStarted marks the beginning of one challenge
	// evaluation.
	EventStarted EventType = "started"
	// EventPassed marks a correct verdict.
	EventPassed EventType = "passed"
	// EventFailed marks an incorrect verdict.
	EventFailed EventType = "failed"
	// EventErrored marks a per-challenge resolution,
	// invocation, or parse failure.
	EventErrored EventType = "errored"
)

// Event represents one lifecycle event during an evaluation run.
type Event struct {
	Type        EventType    `json:"type"`
	ChallengeID challenge.ID `json:"challenge_id"`
	Name        string       `json:"name"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Message     string       `json:"message,omitempty"`
	Matching    int          `json:"matching,omitempty"`
	Expected    int          `json:"expected,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

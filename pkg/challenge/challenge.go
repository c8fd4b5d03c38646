// Package challenge defines the core data model for the RRULE
// gauntlet: the challenge specification, its ground-truth
// variants, and the result types produced by an evaluation run.
package challenge

import "fmt"

// ID uniquely identifies a challenge within a bank.
type ID string

// Difficulty is the ordered difficulty tier of a challenge:
// Easy < Medium < Hard.
type Difficulty int

const (
	// DifficultyEasy marks warm-up challenges.
	DifficultyEasy Difficulty = iota
	// DifficultyMedium marks challenges requiring careful rule
	// interpretation.
	DifficultyMedium
	// DifficultyHard marks challenges that combine rule
	// interactions with timezone edge cases.
	DifficultyHard
)

// String returns the display name of a difficulty tier.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseDifficulty converts a display name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "Easy":
		return DifficultyEasy, nil
	case "Medium":
		return DifficultyMedium, nil
	case "Hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty: %q", s)
	}
}

// Challenge describes one recurrence-rule puzzle. A Challenge is
// constructed once from a bank definition and never mutated
// during a run; freshly resolved ground truth is cached by the
// runner, not written back into the Challenge.
type Challenge struct {
	// ID is the unique identifier within a bank.
	ID ID

	// Name is the human-readable display name.
	Name string

	// Question is the natural-language question posed to the
	// agent.
	Question string

	// RRule is the RFC 5545 recurrence rule string.
	RRule string

	// DTStart is the local start timestamp in the challenge
	// timezone.
	DTStart string

	// Timezone is the IANA timezone identifier.
	Timezone string

	// DurationMinutes is the event duration in minutes.
	DurationMinutes int

	// Until is the optional rule termination bound, local time.
	// Empty means no bound.
	Until string

	// ExDates lists explicit exclusion dates. Empty means none.
	ExDates []string

	// MaxCount caps the number of occurrences to expand. Zero
	// means no cap; when set it must be positive.
	MaxCount int

	// Difficulty is the challenge tier.
	Difficulty Difficulty

	// WhyHard optionally explains what makes the case
	// adversarial. Shown when an agent fails the challenge.
	WhyHard string

	// Truth determines how the expected answer is obtained.
	Truth GroundTruth
}

// Validate checks the construction-time invariants of a
// Challenge.
func (c *Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("challenge %s: name is required", c.ID)
	}
	if c.RRule == "" {
		return fmt.Errorf("challenge %s: rrule is required", c.ID)
	}
	if c.DTStart == "" {
		return fmt.Errorf("challenge %s: dtstart is required", c.ID)
	}
	if c.Timezone == "" {
		return fmt.Errorf("challenge %s: timezone is required", c.ID)
	}
	if c.MaxCount < 0 {
		return fmt.Errorf(
			"challenge %s: max_count must be positive, got %d",
			c.ID, c.MaxCount,
		)
	}
	return nil
}

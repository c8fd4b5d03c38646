package eval

import (
	"context"

	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/truth"
)

// Verification is the outcome of resolving one challenge's
// ground truth without involving an agent.
type Verification struct {
	ChallengeID challenge.ID
	Name        string
	Difficulty  string

	// Occurrences is the resolved sequence. Empty when Err is
	// set.
	Occurrences []string

	// Err is the resolution failure, if any.
	Err error
}

// Verify resolves ground truth for every challenge in order,
// recomputing engine-mode challenges even when they carry a
// cached answer. Resolution failures are isolated per challenge:
// N challenges always yield N verification rows.
func Verify(
	ctx context.Context,
	resolver *truth.Resolver,
	challenges []challenge.Challenge,
) []Verification {
	rows := make([]Verification, 0, len(challenges))

	for _, c := range challenges {
		row := Verification{
			ChallengeID: c.ID,
			Name:        c.Name,
			Difficulty:  c.Difficulty.String(),
		}

		occurrences, err := resolver.ResolveFresh(ctx, c)
		if err != nil {
			row.Err = err
		} else {
			row.Occurrences = occurrences
		}

		rows = append(rows, row)
	}

	return rows
}

// Answers collects successfully resolved sequences keyed by
// challenge ID, suitable for refreshing a bank file.
func Answers(
	rows []Verification,
) map[challenge.ID][]string {
	answers := make(map[challenge.ID][]string, len(rows))
	for _, row := range rows {
		if row.Err == nil {
			answers[row.ChallengeID] = row.Occurrences
		}
	}
	return answers
}

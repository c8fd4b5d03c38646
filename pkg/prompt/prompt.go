// Package prompt renders challenges into the natural-language
// question and technical fact sheet sent to the reasoning agent.
package prompt

import (
	"fmt"
	"strings"

	"digital.vasic.gauntlet/pkg/challenge"
)

// SystemInstruction is the fixed system-level instruction paired
// with every challenge prompt. It pins the required output
// contract: a bare JSON array of RFC 3339 UTC timestamps using
// explicit +00:00 offsets, no prose.
const SystemInstruction = `You are a calendar computation expert. You will be given recurrence rule
(RRULE) challenges per RFC 5545. For each challenge, compute the exact
UTC start times of the specified recurring events.

Rules:
- Output ONLY a JSON array of UTC datetime strings in RFC 3339 format.
- Use the +00:00 suffix (not Z).
- Account for DST transitions, leap years, and timezone offsets.
- Double-check your work: count the occurrences carefully.

Example output format:
["2026-03-01T07:00:00+00:00", "2026-03-08T07:00:00+00:00"]
`

// Build renders the user prompt for one challenge. The output is
// deterministic and contains only fields present on the
// challenge: the UNTIL and EXDATE lines appear exactly when the
// challenge carries them, never with invented values.
func Build(c challenge.Challenge) string {
	parts := []string{
		fmt.Sprintf("Challenge: %s", c.Name),
		"",
		c.Question,
		"",
		"Technical details:",
		fmt.Sprintf("  RRULE: %s", c.RRule),
		fmt.Sprintf(
			"  DTSTART: %s (local time in the specified timezone)",
			c.DTStart,
		),
		fmt.Sprintf("  Timezone: %s", c.Timezone),
		fmt.Sprintf("  Duration: %d minutes", c.DurationMinutes),
	}

	if c.Until != "" {
		parts = append(parts, fmt.Sprintf(
			"  UNTIL: %s (local time in the specified timezone)",
			c.Until,
		))
	}
	if len(c.ExDates) > 0 {
		parts = append(parts, fmt.Sprintf(
			"  EXDATE: %s", strings.Join(c.ExDates, ", "),
		))
	}

	parts = append(parts,
		"",
		"Return ONLY the JSON array of UTC start times.",
	)
	return strings.Join(parts, "\n")
}

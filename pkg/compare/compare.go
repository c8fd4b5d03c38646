// Package compare implements timestamp normalization and the
// answer comparison algorithm used for grading.
package compare

import (
	"strings"

	"digital.vasic.gauntlet/pkg/challenge"
)

// Normalize canonicalizes a timestamp string for comparison:
// surrounding whitespace is trimmed and the zero-offset literal
// suffix "Z" is rewritten to the explicit "+00:00" form. The two
// encodings denote the same instant; normalizing lets them
// compare equal without touching instant semantics. Normalize is
// idempotent.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1] + "+00:00"
	}
	return s
}

// Compare grades an actual occurrence sequence against the
// expected one and returns a Verdict.
//
// Correct is order-sensitive: recurrence expansions have a
// canonical chronological order, and an answer listing the right
// instants in the wrong order is wrong. Missing and Extra use
// unordered membership so the diagnostics stay meaningful for
// permuted or truncated answers. Do not collapse the two
// policies into a set comparison.
func Compare(expected, actual []string) challenge.Verdict {
	normExpected := normalizeAll(expected)
	normActual := normalizeAll(actual)

	matching := 0
	for i := 0; i < len(normExpected) && i < len(normActual); i++ {
		if normExpected[i] == normActual[i] {
			matching++
		}
	}

	return challenge.Verdict{
		Correct:       sequencesEqual(normExpected, normActual),
		ExpectedCount: len(normExpected),
		ActualCount:   len(normActual),
		Matching:      matching,
		Missing:       absentFrom(normExpected, normActual),
		Extra:         absentFrom(normActual, normExpected),
	}
}

func normalizeAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Normalize(s)
	}
	return out
}

func sequencesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// absentFrom returns the entries of from that do not occur
// anywhere in in. Always returns a non-nil slice so the verdict
// serializes as an empty array rather than null.
func absentFrom(from, in []string) []string {
	present := make(map[string]bool, len(in))
	for _, s := range in {
		present[s] = true
	}

	out := make([]string, 0)
	for _, s := range from {
		if !present[s] {
			out = append(out, s)
		}
	}
	return out
}

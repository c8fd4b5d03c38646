package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"digital.vasic.gauntlet/pkg/challenge"
)

// GenerateMarkdownSummary renders a run report as a Markdown
// document suitable for checking into a results directory.
func GenerateMarkdownSummary(
	report *challenge.RunReport,
) string {
	var sb strings.Builder

	sb.WriteString("# RRULE Gauntlet - Run Summary\n\n")
	sb.WriteString(
		fmt.Sprintf("**Run ID:** %s\n\n", report.RunID),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Model:** %s (%s)\n\n",
			report.Model, report.Provider,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Completed:** %s\n\n", report.Timestamp,
		),
	)
	sb.WriteString(
		fmt.Sprintf("**Score:** %s\n\n", report.Score),
	)

	sb.WriteString("## Challenges\n\n")
	sb.WriteString(
		"| Challenge | Difficulty | Verdict | Matching |\n",
	)
	sb.WriteString(
		"|-----------|------------|---------|----------|\n",
	)

	for _, res := range report.Results {
		verdict := "FAIL"
		if res.Correct {
			verdict = "PASS"
		}
		sb.WriteString(
			fmt.Sprintf(
				"| %s | %s | %s | %d/%d |\n",
				res.Name, res.Difficulty, verdict,
				res.Matching, res.ExpectedCount,
			),
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")

	passed := report.Passed()
	total := len(report.Results)
	sb.WriteString(
		fmt.Sprintf("| Total Challenges | %d |\n", total),
	)
	sb.WriteString(
		fmt.Sprintf("| Passed | %d |\n", passed),
	)
	sb.WriteString(
		fmt.Sprintf("| Failed | %d |\n", total-passed),
	)
	if total > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"| Pass Rate | %.0f%% |\n",
				float64(passed)/float64(total)*100,
			),
		)
	}

	return sb.String()
}

// SaveMarkdownSummary writes the Markdown summary next to a run
// artifact, creating parent directories as needed.
func SaveMarkdownSummary(
	path string, report *challenge.RunReport,
) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf(
				"failed to create output directory: %w", err,
			)
		}
	}

	content := GenerateMarkdownSummary(report)
	if err := os.WriteFile(
		path, []byte(content), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}
	return nil
}

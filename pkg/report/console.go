package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/eval"
)

var (
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// difficultyStyle maps a difficulty label to its display style.
func difficultyStyle(difficulty string) lipgloss.Style {
	switch difficulty {
	case challenge.DifficultyEasy.String():
		return passStyle
	case challenge.DifficultyMedium.String():
		return warnStyle
	case challenge.DifficultyHard.String():
		return failStyle
	default:
		return dimStyle
	}
}

// ConsoleReporter renders run progress and results for a
// terminal.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter creates a console reporter writing to out.
// When verbose is true, diagnostics are printed for passing
// challenges too.
func NewConsoleReporter(
	out io.Writer, verbose bool,
) *ConsoleReporter {
	return &ConsoleReporter{out: out, verbose: verbose}
}

// Header prints the gauntlet banner.
func (r *ConsoleReporter) Header() {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n", boldStyle.Render(rule))
	fmt.Fprintf(
		r.out, "%s\n",
		boldStyle.Render("  THE RRULE GAUNTLET"),
	)
	fmt.Fprintf(
		r.out, "%s\n",
		dimStyle.Render(
			"  10 challenges that break LLMs on calendar math",
		),
	)
	fmt.Fprintf(r.out, "%s\n\n", boldStyle.Render(rule))
}

// RunInfo prints the model and challenge count for a run.
func (r *ConsoleReporter) RunInfo(
	model, provider string, count int,
) {
	fmt.Fprintf(
		r.out, "  %s\n",
		infoStyle.Render(fmt.Sprintf(
			"Model: %s (%s)", model, provider,
		)),
	)
	fmt.Fprintf(
		r.out, "  %s\n\n",
		infoStyle.Render(fmt.Sprintf(
			"Challenges: %d", count,
		)),
	)
}

// ChallengeResult prints the verdict line for one challenge,
// with diagnostics for failures (or always, when verbose).
// whyHard is printed on failure when non-empty.
func (r *ConsoleReporter) ChallengeResult(
	res challenge.EvaluationResult, whyHard string,
) {
	status := passStyle.Render("PASS")
	if !res.Correct {
		status = failStyle.Render("FAIL")
	}

	diff := difficultyStyle(res.Difficulty).
		Render(res.Difficulty)
	fmt.Fprintf(
		r.out, "  [%s] %s %s\n",
		status, res.Name,
		dimStyle.Render("(")+diff+dimStyle.Render(")"),
	)

	if !res.Correct || r.verbose {
		fmt.Fprintf(
			r.out,
			"        Expected %d events, got %d\n",
			res.ExpectedCount, res.ActualCount,
		)
		fmt.Fprintf(
			r.out, "        Matching: %d/%d\n",
			res.Matching, res.ExpectedCount,
		)
		if len(res.Missing) > 0 {
			fmt.Fprintf(
				r.out, "        %s\n",
				failStyle.Render(fmt.Sprintf(
					"Missing: %v", res.Missing,
				)),
			)
		}
		if len(res.Extra) > 0 {
			fmt.Fprintf(
				r.out, "        %s\n",
				warnStyle.Render(fmt.Sprintf(
					"Extra:   %v", res.Extra,
				)),
			)
		}
	}

	if !res.Correct && whyHard != "" {
		fmt.Fprintf(
			r.out, "        %s\n",
			dimStyle.Render("Why: "+whyHard),
		)
	}
}

// Summary prints the final score with a verdict on the model's
// calendar reasoning.
func (r *ConsoleReporter) Summary(passed, total int) {
	pct := 0.0
	if total > 0 {
		pct = float64(passed) / float64(total) * 100
	}

	scoreStyle := failStyle
	switch {
	case pct == 100:
		scoreStyle = passStyle
	case pct >= 50:
		scoreStyle = warnStyle
	}

	fmt.Fprintf(
		r.out, "\n%s %s\n",
		boldStyle.Render("  Score:"),
		scoreStyle.Render(fmt.Sprintf(
			"%d/%d (%.0f%%)", passed, total, pct,
		)),
	)

	switch {
	case pct == 100:
		fmt.Fprintf(
			r.out, "  %s\n",
			passStyle.Render(
				"Perfect score! This model handles "+
					"calendar math correctly.",
			),
		)
	case pct >= 70:
		fmt.Fprintf(
			r.out, "  %s\n",
			warnStyle.Render(
				"Good but not reliable for production "+
					"calendar operations.",
			),
		)
	case pct >= 40:
		fmt.Fprintf(
			r.out, "  %s\n",
			failStyle.Render(
				"Significant gaps in calendar reasoning.",
			),
		)
	default:
		fmt.Fprintf(
			r.out, "  %s\n",
			failStyle.Render(
				"This model should not be trusted with "+
					"calendar math.",
			),
		)
	}
	fmt.Fprintln(r.out)
}

// VerificationRow prints the outcome of one ground-truth
// verification. When verbose, each occurrence is listed.
func (r *ConsoleReporter) VerificationRow(
	row eval.Verification, mode string,
) {
	if row.Err != nil {
		fmt.Fprintf(
			r.out, "  [%s] %s: %v\n",
			failStyle.Render("ERR "), row.Name, row.Err,
		)
		return
	}

	fmt.Fprintf(
		r.out, "  [%s] %s: %d events (%s)\n",
		passStyle.Render(" OK "), row.Name,
		len(row.Occurrences), mode,
	)
	if r.verbose {
		for _, occ := range row.Occurrences {
			fmt.Fprintf(r.out, "           %s\n", occ)
		}
	}
}

// Notice prints an informational line.
func (r *ConsoleReporter) Notice(msg string) {
	fmt.Fprintf(
		r.out, "\n  %s\n", infoStyle.Render(msg),
	)
}

// Errorf prints an error line.
func (r *ConsoleReporter) Errorf(
	format string, args ...any,
) {
	fmt.Fprintf(
		r.out, "  %s\n",
		failStyle.Render(fmt.Sprintf(format, args...)),
	)
}

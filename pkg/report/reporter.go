// Package report renders gauntlet run results: a styled console
// view, a persistent JSON run artifact, a Markdown summary, and
// a JSONL run history.
package report

import (
	"io"

	"digital.vasic.gauntlet/pkg/challenge"
)

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport creates a report for a full run.
	GenerateReport(
		report *challenge.RunReport,
	) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(
		w io.Writer, report *challenge.RunReport,
	) error
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"digital.vasic.gauntlet/pkg/challenge"
)

// JSONReporter generates JSON run artifacts.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport serializes a full run report.
func (r *JSONReporter) GenerateReport(
	report *challenge.RunReport,
) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// WriteReport writes a serialized run report to the specified
// writer.
func (r *JSONReporter) WriteReport(
	w io.Writer, report *challenge.RunReport,
) error {
	data, err := r.GenerateReport(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveReport persists the run artifact to path, creating parent
// directories as needed.
func (r *JSONReporter) SaveReport(
	path string, report *challenge.RunReport,
) error {
	data, err := r.GenerateReport(report)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal run report: %w", err,
		)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf(
				"failed to create output directory: %w", err,
			)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf(
			"failed to write run report: %w", err,
		)
	}
	return nil
}

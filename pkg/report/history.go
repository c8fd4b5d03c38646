package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"digital.vasic.gauntlet/pkg/challenge"
)

// HistoricalEntry represents a single gauntlet run in the
// historical log. It carries enough to compare models over time
// without re-reading full run artifacts.
type HistoricalEntry struct {
	Timestamp string `json:"timestamp"`
	RunID     string `json:"run_id"`
	Model     string `json:"model"`
	Provider  string `json:"provider"`
	Score     string `json:"score"`
	Passed    int    `json:"passed"`
	Total     int    `json:"total"`
}

// AppendToHistory adds an entry for the run to the historical
// log stored at historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string, report *challenge.RunReport,
) error {
	entry := HistoricalEntry{
		Timestamp: report.Timestamp,
		RunID:     report.RunID,
		Model:     report.Model,
		Provider:  report.Provider,
		Score:     report.Score,
		Passed:    report.Passed(),
		Total:     len(report.Results),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// LoadHistory reads all entries from the historical log. A
// missing file yields an empty history, not an error.
func LoadHistory(
	historyPath string,
) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	var entries []HistoricalEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry HistoricalEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf(
				"failed to parse history entry: %w", err,
			)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to read history file: %w", err,
		)
	}
	return entries, nil
}

package ingest

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

const reportName = ".lastrun.json"

// WriteRunReport persists the run summary next to the data
// (<dir>/.lastrun.json): per-ticker outcomes plus the partition files
// written. Best-effort output for operators; failures only warn.
func WriteRunReport(dir string, sum *Summary) error {
	if sum == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	p := filepath.Join(dir, reportName)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return err
	}
	slog.Info("run report saved", "path", p, "outcomes", len(sum.Outcomes), "partitions", len(sum.Partitions))
	return nil
}

// Counts tallies outcomes by status for log lines and exit decisions.
func (s *Summary) Counts() (ok, skipped, failed int) {
	for _, o := range s.Outcomes {
		switch o.Status {
		case StatusOK:
			ok++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return ok, skipped, failed
}

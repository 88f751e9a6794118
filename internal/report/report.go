// Package report writes simulation summaries as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/shadowgov/internal/statistics"
)

// Report is the on-disk record of one simulate run
type Report struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	RunID       string                   `json:"runId,omitempty"`
	DifficultyA string                   `json:"difficultyA"`
	DifficultyB string                   `json:"difficultyB"`
	Seed        int64                    `json:"seed"`
	Summary     Summary                  `json:"summary"`
	Results     []statistics.MatchResult `json:"results,omitempty"`
}

// Summary is the statistics of a run with margins measured from seat A
type Summary struct {
	Matches    int            `json:"matches"`
	WinsA      int            `json:"winsA"`
	WinsB      int            `json:"winsB"`
	Draws      int            `json:"draws"`
	WinRateA   float64        `json:"winRateA"`
	WinRateB   float64        `json:"winRateB"`
	MeanMargin float64        `json:"meanMargin"`
	StdDev     float64        `json:"stdDev"`
	CI95Low    float64        `json:"ci95Low"`
	CI95High   float64        `json:"ci95High"`
	Median     float64        `json:"median"`
	P10        float64        `json:"p10"`
	P90        float64        `json:"p90"`
	MeanTurns  float64        `json:"meanTurns"`
	Cards      int            `json:"cardsPlayed"`
	Reasons    map[string]int `json:"reasons"`
}

// Summarize flattens stats into a Summary
func Summarize(stats *statistics.Statistics) Summary {
	if stats == nil {
		return Summary{Reasons: map[string]int{}}
	}
	lo, hi := stats.ConfidenceInterval95()
	reasons := make(map[string]int, len(stats.Reasons))
	for k, v := range stats.Reasons {
		reasons[k] = v
	}
	return Summary{
		Matches:    stats.Matches,
		WinsA:      stats.WinsA,
		WinsB:      stats.WinsB,
		Draws:      stats.Draws,
		WinRateA:   stats.WinRateA(),
		WinRateB:   stats.WinRateB(),
		MeanMargin: stats.Mean(),
		StdDev:     stats.StdDev(),
		CI95Low:    lo,
		CI95High:   hi,
		Median:     stats.Median(),
		P10:        stats.Percentile(0.1),
		P90:        stats.Percentile(0.9),
		MeanTurns:  stats.MeanTurns(),
		Cards:      stats.CardsPlayed,
		Reasons:    reasons,
	}
}

// Write stores r at filename as indented JSON. Readers see either the old
// file or the complete new one.
func Write(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return writeFileAtomic(filename, append(data, '\n'), 0o644)
}

// Read loads a report written by Write
func Read(filename string) (Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return r, nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place; the rename is only atomic within one filesystem.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// internal/runner/csv.go
//
// CSV export of sweep datapoints, one row per cell, stable column order.

package runner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the canonical column order for datapoint CSVs.
var csvHeader = []string{
	"id",
	"agent",
	"alpha",
	"gamma",
	"epsilon",
	"training_index",
	"test_performance",
	"num_states_visited",
	"avg_visits_per_state",
	"avg_score",
	"avg_guesses",
	"training_delta_raw",
	"training_delta_rms",
}

// WriteCSV writes the datapoints to path, header first.
func WriteCSV(path string, points []Datapoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runner: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("runner: write %s: %w", path, err)
	}
	for _, p := range points {
		row := []string{
			p.ID,
			p.Agent,
			ftoa(p.Alpha),
			ftoa(p.Gamma),
			ftoa(p.Epsilon),
			strconv.Itoa(p.TrainingIndex),
			ftoa(p.TestPerformance),
			strconv.Itoa(p.NumStatesVisited),
			ftoa(p.AvgVisitsPerState),
			ftoa(p.AvgScore),
			ftoa(p.AvgGuesses),
			ftoa(p.TrainingDeltaRaw),
			ftoa(p.TrainingDeltaRMS),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("runner: write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("runner: flush %s: %w", path, err)
	}
	return nil
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

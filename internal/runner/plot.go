// internal/runner/plot.go
//
// HTML chart report for a finished sweep: one bar chart of evaluation solve
// rate and one of average guesses, grouped by agent, with an (α, ε) label
// per cell.

package runner

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteCharts renders a sweep report page to path (an .html file).
func WriteCharts(path string, points []Datapoint) error {
	byAgent := make(map[string][]Datapoint)
	var agents []string
	for _, p := range points {
		if _, ok := byAgent[p.Agent]; !ok {
			agents = append(agents, p.Agent)
		}
		byAgent[p.Agent] = append(byAgent[p.Agent], p)
	}
	sort.Strings(agents)

	// X axis: the (α, ε) grid labels, taken from the first agent's cells.
	var labels []string
	if len(agents) > 0 {
		for _, p := range byAgent[agents[0]] {
			labels = append(labels, fmt.Sprintf("α=%g ε=%g", p.Alpha, p.Epsilon))
		}
	}

	solve := charts.NewBar()
	solve.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Evaluation solve rate"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	solve.SetXAxis(labels)

	guesses := charts.NewBar()
	guesses.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average guesses per solve attempt"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	guesses.SetXAxis(labels)

	for _, name := range agents {
		var solveItems, guessItems []opts.BarData
		for _, p := range byAgent[name] {
			solveItems = append(solveItems, opts.BarData{Value: p.TestPerformance})
			guessItems = append(guessItems, opts.BarData{Value: p.AvgGuesses})
		}
		solve.AddSeries(name, solveItems)
		guesses.AddSeries(name, guessItems)
	}

	page := components.NewPage()
	page.AddCharts(solve, guesses)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runner: create %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("runner: render %s: %w", path, err)
	}
	return nil
}

// ABOUTME: Dashboard demo script: title, text, sample table and random line chart
// ABOUTME: The chart data is drawn fresh on every rerun

package demo

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/2389/widgetdash/internal/frame"
	"github.com/2389/widgetdash/internal/page"
)

const (
	chartRows = 20
)

var chartColumns = []string{"a", "b", "c"}

// SampleTable returns the fixed two-column table shown on the dashboard.
func SampleTable() (*frame.Frame, error) {
	return frame.FromInts(
		[]string{"First column", "second column"},
		[][]int{{1, 2, 3, 4}, {10, 20, 30, 40}},
	)
}

// ChartData draws the 20×3 random matrix plotted on the dashboard.
func ChartData(rng *rand.Rand) (*frame.Frame, error) {
	return frame.RandomNormal(rng, chartRows, chartColumns)
}

// Dashboard renders the dashboard page. A nil rng uses the unseeded global
// source.
func Dashboard(_ context.Context, p *page.Page, rng *rand.Rand) error {
	p.Title("hello Stream lit")
	p.Write("this is a simple text")

	table, err := SampleTable()
	if err != nil {
		return fmt.Errorf("building sample table: %w", err)
	}
	p.Table(table)

	chart, err := ChartData(rng)
	if err != nil {
		return fmt.Errorf("drawing chart data: %w", err)
	}
	p.LineChart(chart)

	return nil
}

// ABOUTME: Line chart geometry for rendering frames as inline SVG
// ABOUTME: One polyline per column, x is the row index, y is scaled to the data range

package webui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/2389/widgetdash/internal/frame"
)

const (
	chartWidth   = 680
	chartHeight  = 260
	chartPadding = 36
)

var chartPalette = []string{
	"#0068c9", "#83c9ff", "#ff2b2b", "#ffabab",
	"#29b09d", "#7defa1", "#ff8700", "#ffd16a",
}

type chartSeries struct {
	Name   string
	Color  string
	Points string
}

type chartView struct {
	Width  int
	Height int
	Left   int
	Right  int
	Top    int
	Bottom int
	YMin   string
	YMax   string
	Series []chartSeries
}

// buildChart lays out every column of f as a series.
func buildChart(f *frame.Frame) (*chartView, error) {
	columns := f.Columns()

	values := make([][]float64, len(columns))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, col := range columns {
		v, err := f.Floats(col)
		if err != nil {
			return nil, fmt.Errorf("chart column: %w", err)
		}
		values[i] = v
		for _, x := range v {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}

	if f.Len() == 0 || len(columns) == 0 {
		lo, hi = 0, 1
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}

	view := &chartView{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartPadding,
		Right:  chartWidth - chartPadding/2,
		Top:    chartPadding / 2,
		Bottom: chartHeight - chartPadding/2,
		YMin:   formatTick(lo),
		YMax:   formatTick(hi),
	}

	plotW := float64(view.Right - view.Left)
	plotH := float64(view.Bottom - view.Top)

	for i, col := range columns {
		var pts strings.Builder
		n := len(values[i])
		for r, v := range values[i] {
			x := float64(view.Left) + plotW/2
			if n > 1 {
				x = float64(view.Left) + plotW*float64(r)/float64(n-1)
			}
			y := float64(view.Top) + plotH*(hi-v)/(hi-lo)

			if r > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.1f,%.1f", x, y)
		}

		view.Series = append(view.Series, chartSeries{
			Name:   col,
			Color:  chartPalette[i%len(chartPalette)],
			Points: pts.String(),
		})
	}

	return view, nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Package report renders a cycle's closes and RSI as a standalone HTML chart.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"rsibot/internal/decision"
	"rsibot/internal/market"
)

// Chart is the data behind one page.
type Chart struct {
	Series     market.PriceSeries
	RSI        []float64 // aligned with the newest len(RSI) bars of Series
	Window     int
	Thresholds decision.Thresholds
	Action     decision.Action
}

// Render writes the HTML page to w.
func (c Chart) Render(w io.Writer) error {
	if c.Series.Len() == 0 {
		return fmt.Errorf("report: empty series")
	}
	if len(c.RSI) > c.Series.Len() {
		return fmt.Errorf("report: %d rsi values for %d bars", len(c.RSI), c.Series.Len())
	}
	labels := c.labels()
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s %s RSI(%d)", c.Series.Symbol, c.Series.Interval, c.Window)
	page.AddCharts(c.priceChart(labels), c.rsiChart(labels))
	return page.Render(w)
}

// WriteFile renders the page to path, creating parent directories.
func (c Chart) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c Chart) labels() []string {
	out := make([]string, c.Series.Len())
	for i := range out {
		if ts := c.Series.TimeString(i); ts != "-" {
			out[i] = ts
		} else {
			out[i] = fmt.Sprintf("#%d", i)
		}
	}
	return out
}

func (c Chart) priceChart(labels []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s close", c.Series.Symbol),
			Subtitle: fmt.Sprintf("interval %s, decision %s", c.Series.Interval, c.Action),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	closes := c.Series.Closes()
	data := make([]opts.LineData, len(closes))
	for i, v := range closes {
		data[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(labels).AddSeries("close", data)
	return line
}

func (c Chart) rsiChart(labels []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("RSI(%d)", c.Window),
			Subtitle: fmt.Sprintf("buy < %g, sell > %g", c.Thresholds.Low, c.Thresholds.High),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)
	// bars inside the seed window have no value
	offset := len(labels) - len(c.RSI)
	rsi := make([]opts.LineData, len(labels))
	low := make([]opts.LineData, len(labels))
	high := make([]opts.LineData, len(labels))
	for i := range labels {
		if i >= offset {
			rsi[i] = opts.LineData{Value: c.RSI[i-offset]}
		} else {
			rsi[i] = opts.LineData{Value: "-"}
		}
		low[i] = opts.LineData{Value: c.Thresholds.Low}
		high[i] = opts.LineData{Value: c.Thresholds.High}
	}
	line.SetXAxis(labels).
		AddSeries("rsi", rsi).
		AddSeries("low", low).
		AddSeries("high", high)
	return line
}

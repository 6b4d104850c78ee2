package services

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderSalesChart draws one bar per day of stats.Daily as a PNG.
func RenderSalesChart(w io.Writer, stats DashboardStats, title string) error {
	bars := make([]chart.Value, 0, len(stats.Daily))
	maxSales := 0.0
	for _, d := range stats.Daily {
		bars = append(bars, chart.Value{Value: d.Sales, Label: d.Date[5:]})
		if d.Sales > maxSales {
			maxSales = d.Sales
		}
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Value: 0, Label: "No sales"})
	}
	if maxSales <= 0 {
		maxSales = 1
	}

	width := 120 + len(bars)*70
	if width < 512 {
		width = 512
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:    width,
		Height:   400,
		BarWidth: 50,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxSales * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// Package charts renders the deposits view imagery.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/holtback/holtback-backend/internal/domain"
)

// depositDateLayout matches the display format stored on deposit entries.
const depositDateLayout = "Jan 2, 2006"

// RenderDepositHistory renders a PNG time series of cumulative deposits.
// Returns nil with no error when there are fewer than two plottable points,
// which is not enough for a series.
func RenderDepositHistory(deposits []domain.DepositEntry) ([]byte, error) {
	xValues := make([]time.Time, 0, len(deposits))
	yValues := make([]float64, 0, len(deposits))

	running := 0.0
	for _, dep := range deposits {
		date, err := time.Parse(depositDateLayout, dep.Date)
		if err != nil {
			continue
		}
		amount, _ := dep.Amount.Float64()
		running += amount
		xValues = append(xValues, date)
		yValues = append(yValues, running)
	}

	if len(xValues) < 2 {
		return nil, nil
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2"),
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("€%.2f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Deposits",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render deposit chart: %w", err)
	}
	return buf.Bytes(), nil
}

package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawRetentionCurve renders the retention line against the benchmark line.
// Days are used as x axis tick labels, values are percentages.
func DrawRetentionCurve(days []string, values, benchmark []float64) ([]byte, error) {
	if len(days) == 0 || len(days) != len(values) {
		return nil, fmt.Errorf("retention curve needs matching days and values, got %d/%d", len(days), len(values))
	}

	xValues := make([]float64, len(days))
	ticks := make([]chart.Tick, len(days))
	for i, day := range days {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: day}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Retention",
			XValues: xValues,
			YValues: values,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlue,
				StrokeWidth: 3,
			},
		},
	}
	if len(benchmark) >= len(days) {
		series = append(series, chart.ContinuousSeries{
			Name:    "Benchmark",
			XValues: xValues,
			YValues: benchmark[:len(days)],
			Style: chart.Style{
				StrokeColor:     drawing.ColorRed,
				StrokeWidth:     2,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}

	graph := chart.Chart{
		Title: "Retention",
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 40},
			FillColor: drawing.ColorWhite,
		},
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "%",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 100.0,
			},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawPlotBar renders one bar per label, sized to keep labels readable.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	if len(barValues) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: findMaxValue(data.getYValues()),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}

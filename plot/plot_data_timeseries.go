package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// timeSeriesData feeds DrawPlotBar with dated buckets, one bar per bucket.
type timeSeriesData struct {
	labels    []string
	values    []float64
	nameGraph string
}

func NewTimeSeriesData(labels []string, values []float64, nameGraph string) timeSeriesData {
	return timeSeriesData{
		labels:    labels,
		values:    values,
		nameGraph: nameGraph,
	}
}

func (d timeSeriesData) GetNameGraph() string {
	return d.nameGraph
}

func (d timeSeriesData) getYValues() []float64 {
	return d.values
}

func (d timeSeriesData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.values) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if len(d.labels) < 2 {
		x = 10.0
	} else if len(d.labels) < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(len(d.labels)) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d timeSeriesData) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.values[i],
			Label: d.labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

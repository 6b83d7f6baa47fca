package main

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/telemetry_insights/provider"
)

// RenderHTMLReport builds a self-contained HTML dashboard for a dataset:
// retention vs benchmark, revenue over time, funnel and segment split.
// Sections without data are skipped.
func RenderHTMLReport(p provider.DataProvider, name string) ([]byte, error) {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Report: %s", name)

	if line := retentionChart(p); line != nil {
		page.AddCharts(line)
	}
	if bar := revenueChart(p); bar != nil {
		page.AddCharts(bar)
	}
	if funnel := funnelChart(p); funnel != nil {
		page.AddCharts(funnel)
	}
	if pie := segmentsChart(p); pie != nil {
		page.AddCharts(pie)
	}

	buf := bytes.NewBuffer([]byte{})
	if err := page.Render(buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func retentionChart(p provider.DataProvider) *charts.Line {
	data := p.RetentionData()
	if len(data.Days) == 0 {
		return nil
	}

	retention := make([]opts.LineData, len(data.Values))
	for i, v := range data.Values {
		retention[i] = opts.LineData{Value: v}
	}
	benchmark := make([]opts.LineData, len(data.Benchmark))
	for i, v := range data.Benchmark {
		benchmark[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Retention, %"}))
	line.SetXAxis(data.Days).
		AddSeries("Retention", retention).
		AddSeries("Benchmark", benchmark)
	return line
}

func revenueChart(p provider.DataProvider) *charts.Bar {
	points := p.RevenueData()
	if len(points) == 0 {
		return nil
	}

	dates := make([]string, len(points))
	values := make([]opts.BarData, len(points))
	for i, pt := range points {
		dates[i] = pt.Date
		values[i] = opts.BarData{Value: pt.Value}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Revenue"}))
	bar.SetXAxis(dates).AddSeries("Revenue", values)
	return bar
}

func funnelChart(p provider.DataProvider) *charts.Funnel {
	steps := p.FunnelData()
	if len(steps) == 0 {
		return nil
	}

	data := make([]opts.FunnelData, len(steps))
	for i, step := range steps {
		data[i] = opts.FunnelData{Name: step.Name, Value: step.Value}
	}

	funnel := charts.NewFunnel()
	funnel.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Funnel"}))
	funnel.AddSeries("Users", data)
	return funnel
}

func segmentsChart(p provider.DataProvider) *charts.Pie {
	segments := p.SegmentData()
	if len(segments) == 0 {
		return nil
	}

	data := make([]opts.PieData, len(segments))
	for i, s := range segments {
		data[i] = opts.PieData{Name: s.Name, Value: s.Count}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Segments"}))
	pie.AddSeries("Segments", data)
	return pie
}

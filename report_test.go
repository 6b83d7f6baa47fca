package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/telemetry_insights/domain/models"
	"github.com/pivolan/telemetry_insights/provider"
)

func TestRenderHTMLReport(t *testing.T) {
	rows := []models.Row{
		{"user_id": models.Text("u1"), "event_date": models.Text("2024-03-01"), "revenue": models.Number(10), "country": models.Text("US")},
		{"user_id": models.Text("u2"), "event_date": models.Text("2024-03-02"), "revenue": models.Number(5), "country": models.Text("DE")},
		{"user_id": models.Text("u1"), "event_date": models.Text("2024-03-02"), "revenue": models.Number(0), "country": models.Text("US")},
	}
	p := provider.NewDataProvider(rows, nil)

	html, err := RenderHTMLReport(p, "sales")
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, "Report: sales")
	assert.Contains(t, out, "Retention")
	assert.Contains(t, out, "Revenue")
}

func TestRenderHTMLReportDemoData(t *testing.T) {
	p := provider.NewDemoDataProvider(models.GenreCasual)
	html, err := RenderHTMLReport(p, "demo_casual")
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

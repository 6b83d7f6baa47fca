package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/telemetry_insights/domain/models"
	"github.com/pivolan/telemetry_insights/provider"
)

func TestFormatKPITable(t *testing.T) {
	out := FormatKPITable([]models.KPICard{
		{Title: "Total Users", Value: 1500, Display: "1.5K"},
		{Title: "Total Revenue", Value: 42.5, Display: "42.50"},
	})
	assert.Contains(t, out, "Total Users")
	assert.Contains(t, out, "1.5K")
	assert.Contains(t, out, "Total Revenue")
}

func TestFormatKPITableEmpty(t *testing.T) {
	assert.Equal(t, "no metrics available", FormatKPITable(nil))
}

func TestFormatRetentionTable(t *testing.T) {
	out := FormatRetentionTable(models.RetentionData{
		Days:      []string{"Day 0", "Day 1"},
		Values:    []float64{100, 38.5},
		Benchmark: []float64{100, 40},
	})
	assert.Contains(t, out, "Day 1")
	assert.Contains(t, out, "38.5%")
	assert.Contains(t, out, "40%")
}

func TestFormatFunnelTable(t *testing.T) {
	out := FormatFunnelTable([]models.FunnelStep{
		{Name: "level_1", Value: 100, Percentage: 100, DropOff: 0},
		{Name: "level_2", Value: 40, Percentage: 40, DropOff: 60},
	})
	assert.Contains(t, out, "level_2")
	assert.Contains(t, out, "60.0%")
}

func TestFormatFunnelTableEmpty(t *testing.T) {
	assert.Contains(t, FormatFunnelTable(nil), "no funnel")
}

func TestFormatSpendersTable(t *testing.T) {
	out := FormatSpendersTable([]models.SpenderTier{
		{Name: "Whale", Users: 1, Revenue: 150, Percentage: 25},
		{Name: "Non-Payer", Users: 2, Revenue: 0, Percentage: 50},
	})
	assert.Contains(t, out, "Whale")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "Non-Payer")
}

func TestFormatColumnsTable(t *testing.T) {
	stats := []models.ColumnStats{
		{Name: "user_id", Type: models.TypeCategorical, UniqueValues: 3, Samples: []string{"u1", "u2"}},
	}
	roles := map[string]models.ColumnRole{"user_id": models.RoleUserID}
	out := FormatColumnsTable(stats, roles)
	assert.Contains(t, out, "user_id")
	assert.Contains(t, out, "categorical")
}

func TestFormatSummary(t *testing.T) {
	rows := []models.Row{
		{"user_id": models.Text("u1"), "revenue": models.Number(10)},
		{"user_id": models.Text("u2"), "revenue": models.Number(0)},
	}
	p := provider.NewDataProvider(rows, nil)
	out := FormatSummary(p, "purchases", len(rows))
	assert.Contains(t, out, "Dataset: purchases (2 rows)")
	assert.Contains(t, out, "ARPU: 5.00")
	assert.Contains(t, out, "Payer conversion: 50.0%")
	assert.Contains(t, out, "/retention")
}

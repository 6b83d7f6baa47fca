package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/telemetry_insights/domain/models"
)

func row(pairs ...interface{}) models.Row {
	r := models.Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		name := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case string:
			r[name] = models.Text(v)
		case float64:
			r[name] = models.Number(v)
		case int:
			r[name] = models.Number(float64(v))
		case bool:
			r[name] = models.Boolean(v)
		case nil:
			r[name] = models.Null()
		}
	}
	return r
}

func TestFunnelDataFromEvents(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event", "level_1"),
		row("user_id", "u1", "event", "level_2"),
		row("user_id", "u2", "event", "level_1"),
	}
	p := NewRealDataProvider(rows, nil)

	assert.Equal(t, models.RoleUserID, p.roles["user_id"])
	assert.Equal(t, models.RoleEvent, p.roles["event"])

	steps := p.FunnelData()
	assert.Equal(t, []models.FunnelStep{
		{Name: "level_1", Value: 2, Percentage: 100, DropOff: 0},
		{Name: "level_2", Value: 1, Percentage: 50, DropOff: 50},
	}, steps)
}

func TestFunnelDataFromLevels(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "level", 1),
		row("user_id", "u1", "level", 3),
		row("user_id", "u2", "level", 1),
		row("user_id", "u3", "level", 2),
		row("user_id", "u4", "level", 1),
	}
	p := NewRealDataProvider(rows, nil)
	steps := p.FunnelData()

	// Max levels: u1=3, u2=1, u3=2, u4=1. At-or-above 1/2/3 = 4/2/1 users.
	assert.Equal(t, []models.FunnelStep{
		{Name: "Level 1", Value: 4, Percentage: 100, DropOff: 0},
		{Name: "Level 2", Value: 2, Percentage: 50, DropOff: 50},
		{Name: "Level 3", Value: 1, Percentage: 25, DropOff: 25},
	}, steps)
}

func TestFunnelDataCategoricalFallback(t *testing.T) {
	rows := []models.Row{
		row("shape", "circle"), row("shape", "circle"), row("shape", "square"), row("shape", "triangle"),
	}
	p := NewRealDataProvider(rows, nil)
	steps := p.FunnelData()
	if assert.Len(t, steps, 3) {
		assert.Equal(t, "circle", steps[0].Name)
		assert.Equal(t, float64(100), steps[0].Percentage)
	}
}

func TestSpenderTiers(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "revenue", 0),
		row("user_id", "u2", "revenue", 0),
		row("user_id", "u3", "revenue", 50),
		row("user_id", "u4", "revenue", 150),
	}
	p := NewRealDataProvider(rows, nil)
	tiers := p.SpenderTiers()

	assert.Equal(t, []models.SpenderTier{
		{Name: "Whale", Users: 1, Revenue: 150, Percentage: 25},
		{Name: "Dolphin", Users: 1, Revenue: 50, Percentage: 25},
		{Name: "Minnow", Users: 0, Revenue: 0, Percentage: 0},
		{Name: "Non-Payer", Users: 2, Revenue: 0, Percentage: 50},
	}, tiers)

	total := 0
	for _, tier := range tiers {
		total += tier.Users
	}
	assert.Equal(t, 4, total, "tiers must partition the user set")
}

func TestRetentionFromUserTimestamps(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2024-01-01"),
		row("user_id", "u1", "event_date", "2024-01-08"),
		row("user_id", "u2", "event_date", "2024-01-01"),
		row("user_id", "u2", "event_date", "2024-01-02"),
		row("user_id", "u3", "event_date", "2024-01-01"),
	}
	p := NewRealDataProvider(rows, nil)

	assert.Equal(t, 1.0, p.RetentionDay(0), "every user is retained on day 0")
	assert.InDelta(t, 2.0/3.0, p.RetentionDay(1), 1e-9)
	assert.InDelta(t, 1.0/3.0, p.RetentionDay(7), 1e-9)
	assert.Equal(t, 0.0, p.RetentionDay(30))

	rd := p.RetentionData()
	assert.Equal(t, []string{"Day 0", "Day 1", "Day 3", "Day 7", "Day 14", "Day 30"}, rd.Days)
	assert.Equal(t, []float64{100, 40, 28, 20, 12, 7}, rd.Benchmark)
}

func TestRetentionFromExplicitColumns(t *testing.T) {
	rows := []models.Row{
		row("d1", 0.4, "d7", 0.2),
		row("d1", 0.4, "d7", 0.2),
	}
	p := NewRealDataProvider(rows, nil)
	rd := p.RetentionData()

	assert.Equal(t, []string{"Day 1", "Day 7"}, rd.Days)
	assert.Equal(t, []float64{40, 20}, rd.Values)
	assert.Equal(t, []float64{100, 40}, rd.Benchmark)
	assert.Equal(t, 0.4, p.RetentionDay(1))
}

func TestRetentionPlaceholder(t *testing.T) {
	rows := []models.Row{row("metric", 1)}
	p := NewRealDataProvider(rows, nil)
	rd := p.RetentionData()

	assert.Equal(t, []string{"Day 0", "Day 1", "Day 7", "Day 30"}, rd.Days)
	assert.Equal(t, []float64{100, 0, 0, 0}, rd.Values)
}

func TestKPIDataCapAndOrder(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "revenue", 10, "duration", 120, "level", 3, "score", 55),
		row("user_id", "u2", "revenue", 30, "duration", 240, "level", 5, "score", 70),
	}
	p := NewRealDataProvider(rows, nil)
	cards := p.KPIData()

	if assert.Len(t, cards, 4) {
		assert.Equal(t, "Total Users", cards[0].Title)
		assert.Equal(t, 2.0, cards[0].Value)
		assert.Equal(t, "Total Revenue", cards[1].Title)
		assert.Equal(t, 40.0, cards[1].Value)
	}
}

func TestKPIDataAlwaysAtLeastOne(t *testing.T) {
	p := NewRealDataProvider([]models.Row{row("blob", "x")}, nil)
	cards := p.KPIData()
	if assert.NotEmpty(t, cards) {
		assert.Equal(t, "Total Rows", cards[0].Title)
		assert.Equal(t, 1.0, cards[0].Value)
	}
}

func TestSegmentDataPercentagesSum(t *testing.T) {
	rows := []models.Row{
		row("platform", "ios"), row("platform", "ios"), row("platform", "android"),
		row("platform", "web"),
	}
	p := NewRealDataProvider(rows, nil)
	segments := p.SegmentData()

	sum := 0.0
	for _, s := range segments {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.Equal(t, "ios", segments[0].Name)
	assert.Equal(t, 2, segments[0].Count)
}

func TestDAUMAUFallbacks(t *testing.T) {
	// Old data: the windowed sets are empty, all-time uniques win.
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2020-01-01"),
		row("user_id", "u2", "event_date", "2020-01-02"),
	}
	p := NewRealDataProvider(rows, nil)
	assert.Equal(t, 2, p.DAU())
	assert.Equal(t, 2, p.MAU())

	// No user column at all: row count.
	p2 := NewRealDataProvider([]models.Row{row("x", 1), row("x", 2), row("x", 3)}, nil)
	assert.Equal(t, 3, p2.DAU())
	assert.Equal(t, 3, p2.MAU())
}

func TestDAUWindow(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2024-03-10"),
		row("user_id", "u2", "event_date", "2024-03-10"),
		row("user_id", "u3", "event_date", "2024-02-01"),
	}
	p := NewRealDataProvider(rows, nil)
	p.now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, p.DAU())
	assert.Equal(t, 2, p.MAU(), "only the last 30 days count when the window is non-empty")
}

func TestARPU(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "revenue", 10),
		row("user_id", "u1", "revenue", 20),
		row("user_id", "u2", "revenue", 0),
	}
	p := NewRealDataProvider(rows, nil)
	assert.Equal(t, 15.0, p.ARPU())

	noRev := NewRealDataProvider([]models.Row{row("user_id", "u1")}, nil)
	assert.Equal(t, 0.0, noRev.ARPU())
}

func TestPayerConversion(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "revenue", 10),
		row("user_id", "u2", "revenue", 0),
		row("user_id", "u3", "revenue", 0),
		row("user_id", "u4", "revenue", 5),
	}
	p := NewRealDataProvider(rows, nil)
	assert.Equal(t, 0.5, p.PayerConversion())
}

func TestRevenueTimeSeries(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2024-03-04", "revenue", 10),
		row("user_id", "u2", "event_date", "2024-03-04", "revenue", 5),
		row("user_id", "u3", "event_date", "2024-03-05", "revenue", 20),
		row("user_id", "u4", "event_date", "2024-03-12", "revenue", 7),
	}
	p := NewRealDataProvider(rows, nil)

	daily := p.RevenueTimeSeries(models.PeriodDay)
	assert.Equal(t, []models.TimePoint{
		{Date: "2024-03-04", Value: 15},
		{Date: "2024-03-05", Value: 20},
		{Date: "2024-03-12", Value: 7},
	}, daily)

	weekly := p.RevenueTimeSeries(models.PeriodWeek)
	assert.Equal(t, []models.TimePoint{
		{Date: "2024-03-04", Value: 35},
		{Date: "2024-03-11", Value: 7},
	}, weekly)

	monthly := p.RevenueTimeSeries(models.PeriodMonth)
	assert.Equal(t, []models.TimePoint{{Date: "2024-03", Value: 42}}, monthly)
}

func TestRevenueDataNoTemporal(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "revenue", 10),
		row("user_id", "u2", "revenue", 32),
	}
	p := NewRealDataProvider(rows, nil)
	assert.Equal(t, []models.RevenuePoint{{Date: "Total", Value: 42}}, p.RevenueData())
}

func TestAttributionChannels(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "utm_source", "fb", "revenue", 10),
		row("user_id", "u2", "utm_source", "fb", "revenue", 0),
		row("user_id", "u3", "utm_source", "google", "revenue", 4),
	}
	p := NewRealDataProvider(rows, nil)
	channels := p.AttributionChannels()

	if assert.Len(t, channels, 2) {
		assert.Equal(t, "fb", channels[0].Channel)
		assert.Equal(t, 2, channels[0].Users)
		assert.Equal(t, 10.0, channels[0].Revenue)
		assert.InDelta(t, 66.67, channels[0].Percentage, 0.01)
		assert.Equal(t, "google", channels[1].Channel)
		assert.Equal(t, 1, channels[1].Users)
		assert.InDelta(t, 33.33, channels[1].Percentage, 0.01)
	}
}

func TestFunnelSteps(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event", "install", "platform", "ios"),
		row("user_id", "u2", "event", "install", "platform", "android"),
		row("user_id", "u1", "event", "purchase", "platform", "ios"),
	}
	p := NewRealDataProvider(rows, nil)

	steps := p.FunnelSteps([]models.FunnelStepDef{
		{Name: "Installed", Event: "install"},
		{Name: "Paid", Event: "purchase"},
		{Name: "iOS Paid", Condition: map[string]string{"event": "purchase", "platform": "ios"}},
	})
	assert.Equal(t, []models.FunnelStep{
		{Name: "Installed", Value: 2, Percentage: 100, DropOff: 0},
		{Name: "Paid", Value: 1, Percentage: 50, DropOff: 50},
		{Name: "iOS Paid", Value: 1, Percentage: 100, DropOff: -50},
	}, steps)

	// Requires both event and user_id roles.
	bare := NewRealDataProvider([]models.Row{row("x", 1)}, nil)
	assert.Nil(t, bare.FunnelSteps([]models.FunnelStepDef{{Event: "install"}}))
}

func TestHistoricalGrowthRate(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2024-03-01", "revenue", 100),
		row("user_id", "u2", "event_date", "2024-03-02", "revenue", 110),
		row("user_id", "u3", "event_date", "2024-03-03", "revenue", 130),
	}
	p := NewRealDataProvider(rows, nil)
	assert.InDelta(t, (130.0-100.0)/100.0/3.0, p.HistoricalGrowthRate(), 1e-9)

	// Fewer than 2 points: the default rate.
	single := NewRealDataProvider([]models.Row{
		row("user_id", "u1", "event_date", "2024-03-01", "revenue", 100),
	}, nil)
	assert.Equal(t, 0.02, single.HistoricalGrowthRate())
}

func TestHistoricalGrowthRateClamped(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "event_date", "2024-03-01", "revenue", 1),
		row("user_id", "u2", "event_date", "2024-03-02", "revenue", 1000),
	}
	p := NewRealDataProvider(rows, nil)
	assert.Equal(t, 0.5, p.HistoricalGrowthRate())
}

func TestSessionMetrics(t *testing.T) {
	rows := []models.Row{
		row("user_id", "u1", "session_id", "s1", "duration", 100),
		row("user_id", "u1", "session_id", "s2", "duration", 200),
		row("user_id", "u2", "session_id", "s3", "duration", 300),
	}
	p := NewRealDataProvider(rows, nil)
	m := p.SessionMetrics()

	assert.Equal(t, 200.0, m.AvgSessionLength)
	assert.Equal(t, 1.5, m.SessionsPerUser)
}

func TestColumnMappingsOverrideHeuristics(t *testing.T) {
	rows := []models.Row{
		row("who", "u1", "gross_revenue", 10),
		row("who", "u2", "gross_revenue", 30),
	}
	mappings := []models.ColumnMapping{
		{OriginalName: "who", Role: models.MappedIdentifier, DataType: "string"},
		{OriginalName: "gross_revenue", Role: models.MappedMetric, DataType: "number"},
	}
	p := NewRealDataProvider(rows, mappings)

	assert.Equal(t, models.RoleUserID, p.roles["who"])
	assert.Equal(t, models.RoleRevenue, p.roles["gross_revenue"])
	assert.Equal(t, 20.0, p.ARPU())
}

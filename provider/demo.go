package provider

import (
	"strconv"

	"github.com/pivolan/telemetry_insights/domain/models"
)

// DemoDataProvider serves canned numbers per game genre. It exists as
// placeholder content for chats that have not uploaded anything yet; there
// is no computation behind it.
type DemoDataProvider struct {
	genre models.Genre
}

func NewDemoDataProvider(genre models.Genre) *DemoDataProvider {
	return &DemoDataProvider{genre: genre}
}

type demoNumbers struct {
	retention  []float64
	dau        int
	mau        int
	arpu       float64
	conversion float64
	growth     float64
	sessionLen float64
	sessions   float64
	revenue    []float64
	funnel     []models.FunnelStep
	segments   []models.SegmentSlice
	tiers      []models.SpenderTier
}

var demoByGenre = map[models.Genre]demoNumbers{
	models.GenreCasual: {
		retention:  []float64{100, 42, 30, 22, 14, 8},
		dau:        12400,
		mau:        98000,
		arpu:       0.42,
		conversion: 0.031,
		growth:     0.03,
		sessionLen: 310,
		sessions:   3.4,
		revenue:    []float64{5100, 5350, 4980, 5600, 5900, 6100, 6300},
		funnel: []models.FunnelStep{
			{Name: "Install", Value: 10000, Percentage: 100, DropOff: 0},
			{Name: "Tutorial", Value: 8200, Percentage: 82, DropOff: 18},
			{Name: "Level 5", Value: 5100, Percentage: 51, DropOff: 31},
			{Name: "Level 10", Value: 2900, Percentage: 29, DropOff: 22},
			{Name: "First Purchase", Value: 310, Percentage: 3.1, DropOff: 25.9},
		},
		segments: []models.SegmentSlice{
			{Name: "organic", Count: 5200, Percentage: 52},
			{Name: "paid", Count: 3100, Percentage: 31},
			{Name: "cross-promo", Count: 1700, Percentage: 17},
		},
		tiers: []models.SpenderTier{
			{Name: "Whale", Users: 40, Revenue: 8200, Percentage: 0.4},
			{Name: "Dolphin", Users: 260, Revenue: 9100, Percentage: 2.6},
			{Name: "Minnow", Users: 900, Revenue: 4100, Percentage: 9},
			{Name: "Non-Payer", Users: 8800, Revenue: 0, Percentage: 88},
		},
	},
	models.GenreMidcore: {
		retention:  []float64{100, 38, 26, 19, 12, 7},
		dau:        5600,
		mau:        41000,
		arpu:       1.85,
		conversion: 0.052,
		growth:     0.02,
		sessionLen: 840,
		sessions:   2.6,
		revenue:    []float64{9800, 10400, 9900, 11200, 11800, 12500, 12100},
		funnel: []models.FunnelStep{
			{Name: "Install", Value: 10000, Percentage: 100, DropOff: 0},
			{Name: "Tutorial", Value: 7600, Percentage: 76, DropOff: 24},
			{Name: "First Battle", Value: 6400, Percentage: 64, DropOff: 12},
			{Name: "Clan Join", Value: 2100, Percentage: 21, DropOff: 43},
			{Name: "First Purchase", Value: 520, Percentage: 5.2, DropOff: 15.8},
		},
		segments: []models.SegmentSlice{
			{Name: "android", Count: 6100, Percentage: 61},
			{Name: "ios", Count: 3900, Percentage: 39},
		},
		tiers: []models.SpenderTier{
			{Name: "Whale", Users: 90, Revenue: 31000, Percentage: 0.9},
			{Name: "Dolphin", Users: 410, Revenue: 18200, Percentage: 4.1},
			{Name: "Minnow", Users: 1200, Revenue: 6900, Percentage: 12},
			{Name: "Non-Payer", Users: 8300, Revenue: 0, Percentage: 83},
		},
	},
	models.GenreHardcore: {
		retention:  []float64{100, 34, 24, 18, 13, 9},
		dau:        2100,
		mau:        15500,
		arpu:       4.6,
		conversion: 0.085,
		growth:     0.015,
		sessionLen: 2400,
		sessions:   1.9,
		revenue:    []float64{16200, 15800, 17400, 18000, 17100, 19200, 20100},
		funnel: []models.FunnelStep{
			{Name: "Install", Value: 10000, Percentage: 100, DropOff: 0},
			{Name: "Tutorial", Value: 6900, Percentage: 69, DropOff: 31},
			{Name: "Campaign Ch.1", Value: 5400, Percentage: 54, DropOff: 15},
			{Name: "PvP Unlock", Value: 3100, Percentage: 31, DropOff: 23},
			{Name: "First Purchase", Value: 850, Percentage: 8.5, DropOff: 22.5},
		},
		segments: []models.SegmentSlice{
			{Name: "veteran", Count: 2800, Percentage: 28},
			{Name: "returning", Count: 2400, Percentage: 24},
			{Name: "new", Count: 4800, Percentage: 48},
		},
		tiers: []models.SpenderTier{
			{Name: "Whale", Users: 180, Revenue: 92000, Percentage: 1.8},
			{Name: "Dolphin", Users: 640, Revenue: 30500, Percentage: 6.4},
			{Name: "Minnow", Users: 1500, Revenue: 8800, Percentage: 15},
			{Name: "Non-Payer", Users: 7680, Revenue: 0, Percentage: 76.8},
		},
	},
}

func (d *DemoDataProvider) numbers() demoNumbers {
	if n, ok := demoByGenre[d.genre]; ok {
		return n
	}
	return demoByGenre[models.GenreCasual]
}

func (d *DemoDataProvider) RetentionData() models.RetentionData {
	n := d.numbers()
	rd := models.RetentionData{Benchmark: truncateBenchmark(len(n.retention))}
	labels := []string{"Day 0", "Day 1", "Day 3", "Day 7", "Day 14", "Day 30"}
	for i, v := range n.retention {
		rd.Days = append(rd.Days, labels[i])
		rd.Values = append(rd.Values, v)
	}
	return rd
}

func (d *DemoDataProvider) FunnelData() []models.FunnelStep {
	return append([]models.FunnelStep{}, d.numbers().funnel...)
}

func (d *DemoDataProvider) KPIData() []models.KPICard {
	n := d.numbers()
	total := 0.0
	for _, v := range n.revenue {
		total += v
	}
	return []models.KPICard{
		kpi("Total Users", float64(n.mau)),
		kpi("Total Revenue", total),
		kpi("ARPU", n.arpu),
		kpi("Avg. Duration", n.sessionLen),
	}
}

func (d *DemoDataProvider) RevenueData() []models.RevenuePoint {
	n := d.numbers()
	points := make([]models.RevenuePoint, 0, len(n.revenue))
	for i, v := range n.revenue {
		points = append(points, models.RevenuePoint{Date: "Day " + strconv.Itoa(i+1), Value: v})
	}
	return points
}

func (d *DemoDataProvider) SegmentData() []models.SegmentSlice {
	return append([]models.SegmentSlice{}, d.numbers().segments...)
}

func (d *DemoDataProvider) DAU() int      { return d.numbers().dau }
func (d *DemoDataProvider) MAU() int      { return d.numbers().mau }
func (d *DemoDataProvider) ARPU() float64 { return d.numbers().arpu }

func (d *DemoDataProvider) RetentionDay(day int) float64 {
	rd := d.RetentionData()
	targets := map[int]int{0: 0, 1: 1, 3: 2, 7: 3, 14: 4, 30: 5}
	if idx, ok := targets[day]; ok && idx < len(rd.Values) {
		return rd.Values[idx] / 100
	}
	return 0
}

func (d *DemoDataProvider) PayerConversion() float64 { return d.numbers().conversion }

func (d *DemoDataProvider) SpenderTiers() []models.SpenderTier {
	return append([]models.SpenderTier{}, d.numbers().tiers...)
}

func (d *DemoDataProvider) RevenueTimeSeries(period models.Period) []models.TimePoint {
	n := d.numbers()
	points := make([]models.TimePoint, 0, len(n.revenue))
	for i, v := range n.revenue {
		points = append(points, models.TimePoint{Date: "Day " + strconv.Itoa(i+1), Value: v})
	}
	return points
}

func (d *DemoDataProvider) AttributionChannels() []models.ChannelStat {
	n := d.numbers()
	stats := make([]models.ChannelStat, 0, len(n.segments))
	for _, s := range n.segments {
		stats = append(stats, models.ChannelStat{Channel: s.Name, Users: s.Count, Percentage: s.Percentage})
	}
	return stats
}

func (d *DemoDataProvider) FunnelSteps(defs []models.FunnelStepDef) []models.FunnelStep {
	return nil
}

func (d *DemoDataProvider) HistoricalGrowthRate() float64 { return d.numbers().growth }

func (d *DemoDataProvider) SessionMetrics() models.SessionMetrics {
	n := d.numbers()
	return models.SessionMetrics{AvgSessionLength: n.sessionLen, SessionsPerUser: n.sessions}
}

package provider

import (
	"github.com/pivolan/telemetry_insights/domain/models"
)

// DataProvider is the query surface the bot and report builders consume.
// Every method is a deterministic read; "not enough data" is an empty slice
// or zero value, never an error.
type DataProvider interface {
	RetentionData() models.RetentionData
	FunnelData() []models.FunnelStep
	KPIData() []models.KPICard
	RevenueData() []models.RevenuePoint
	SegmentData() []models.SegmentSlice
	DAU() int
	MAU() int
	ARPU() float64
	RetentionDay(day int) float64
	PayerConversion() float64
	SpenderTiers() []models.SpenderTier
	RevenueTimeSeries(period models.Period) []models.TimePoint
	AttributionChannels() []models.ChannelStat
	FunnelSteps(defs []models.FunnelStepDef) []models.FunnelStep
	HistoricalGrowthRate() float64
	SessionMetrics() models.SessionMetrics
}

// NewDataProvider picks the implementation for the given dataset: the null
// object when there are no rows, otherwise the real engine.
func NewDataProvider(rows []models.Row, mappings []models.ColumnMapping) DataProvider {
	if len(rows) == 0 {
		return &EmptyDataProvider{}
	}
	return NewRealDataProvider(rows, mappings)
}

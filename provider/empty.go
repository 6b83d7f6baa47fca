package provider

import (
	"github.com/pivolan/telemetry_insights/domain/models"
)

// EmptyDataProvider is the null object used when no rows are available, so
// callers never have to check the provider itself.
type EmptyDataProvider struct{}

func (e *EmptyDataProvider) RetentionData() models.RetentionData { return models.RetentionData{} }
func (e *EmptyDataProvider) FunnelData() []models.FunnelStep     { return nil }
func (e *EmptyDataProvider) KPIData() []models.KPICard           { return nil }
func (e *EmptyDataProvider) RevenueData() []models.RevenuePoint  { return nil }
func (e *EmptyDataProvider) SegmentData() []models.SegmentSlice  { return nil }
func (e *EmptyDataProvider) DAU() int                            { return 0 }
func (e *EmptyDataProvider) MAU() int                            { return 0 }
func (e *EmptyDataProvider) ARPU() float64                       { return 0 }
func (e *EmptyDataProvider) RetentionDay(day int) float64        { return 0 }
func (e *EmptyDataProvider) PayerConversion() float64            { return 0 }
func (e *EmptyDataProvider) SpenderTiers() []models.SpenderTier  { return nil }
func (e *EmptyDataProvider) RevenueTimeSeries(period models.Period) []models.TimePoint {
	return nil
}
func (e *EmptyDataProvider) AttributionChannels() []models.ChannelStat { return nil }
func (e *EmptyDataProvider) FunnelSteps(defs []models.FunnelStepDef) []models.FunnelStep {
	return nil
}
func (e *EmptyDataProvider) HistoricalGrowthRate() float64         { return 0 }
func (e *EmptyDataProvider) SessionMetrics() models.SessionMetrics { return models.SessionMetrics{} }

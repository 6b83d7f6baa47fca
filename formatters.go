package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/telemetry_insights/domain/models"
	"github.com/pivolan/telemetry_insights/provider"
)

// FormatKPITable renders the headline cards as a compact table.
func FormatKPITable(cards []models.KPICard) string {
	if len(cards) == 0 {
		return "no metrics available"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, card := range cards {
		t.AppendRow(table.Row{card.Title, card.Display})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatRetentionTable(data models.RetentionData) string {
	if len(data.Days) == 0 {
		return "no retention data"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Day", "Retention", "Benchmark"})
	for i, day := range data.Days {
		benchmark := ""
		if i < len(data.Benchmark) {
			benchmark = fmt.Sprintf("%.0f%%", data.Benchmark[i])
		}
		t.AppendRow(table.Row{day, fmt.Sprintf("%.1f%%", data.Values[i]), benchmark})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatFunnelTable(steps []models.FunnelStep) string {
	if len(steps) == 0 {
		return "no funnel detected, need an event, level or low-cardinality column"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Step", "Users", "%", "Drop-off"})
	for _, step := range steps {
		t.AppendRow(table.Row{
			step.Name,
			step.Value,
			fmt.Sprintf("%.1f%%", step.Percentage),
			fmt.Sprintf("%.1f%%", step.DropOff),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatSegmentsTable(segments []models.SegmentSlice) string {
	if len(segments) == 0 {
		return "no segment column detected"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Segment", "Rows", "%"})
	for _, s := range segments {
		t.AppendRow(table.Row{s.Name, s.Count, fmt.Sprintf("%.1f%%", s.Percentage)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatSpendersTable(tiers []models.SpenderTier) string {
	if len(tiers) == 0 {
		return "no revenue column detected"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Tier", "Users", "Revenue", "%"})
	for _, tier := range tiers {
		t.AppendRow(table.Row{
			tier.Name,
			tier.Users,
			fmt.Sprintf("%.2f", tier.Revenue),
			fmt.Sprintf("%.1f%%", tier.Percentage),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatChannelsTable(channels []models.ChannelStat) string {
	if len(channels) == 0 {
		return "no acquisition channel column detected"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Channel", "Users", "Revenue", "%"})
	for _, ch := range channels {
		t.AppendRow(table.Row{
			ch.Channel,
			ch.Users,
			fmt.Sprintf("%.2f", ch.Revenue),
			fmt.Sprintf("%.1f%%", ch.Percentage),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func FormatRevenueTable(points []models.RevenuePoint) string {
	if len(points) == 0 {
		return "no revenue data"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Date", "Revenue"})
	for _, p := range points {
		t.AppendRow(table.Row{p.Date, fmt.Sprintf("%.2f", p.Value)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// FormatColumnsTable shows what the analyzer decided about each column.
func FormatColumnsTable(stats []models.ColumnStats, roles map[string]models.ColumnRole) string {
	if len(stats) == 0 {
		return "no columns"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Type", "Role", "Uniq", "Samples"})
	for _, s := range stats {
		samples := strings.Join(s.Samples, ", ")
		if len(samples) > 40 {
			samples = samples[:37] + "..."
		}
		t.AppendRow(table.Row{s.Name, string(s.Type), string(roles[s.Name]), s.UniqueValues, samples})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// FormatSummary builds the overview message sent right after an upload.
func FormatSummary(p provider.DataProvider, name string, rowCount int) string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "Dataset: %s (%d rows)\n\n", name, rowCount)
	buf.WriteString(FormatKPITable(p.KPIData()))
	buf.WriteString("\n\n")
	fmt.Fprintf(buf, "DAU: %d  MAU: %d\n", p.DAU(), p.MAU())
	fmt.Fprintf(buf, "ARPU: %.2f\n", p.ARPU())
	fmt.Fprintf(buf, "Payer conversion: %.1f%%\n", p.PayerConversion()*100)
	session := p.SessionMetrics()
	if session.AvgSessionLength > 0 || session.SessionsPerUser > 0 {
		fmt.Fprintf(buf, "Avg session: %.1f  Sessions/user: %.1f\n", session.AvgSessionLength, session.SessionsPerUser)
	}
	buf.WriteString("\nCommands: /kpi /retention /funnel /revenue /segments /spenders /channels /sessions /growth /columns /report /export")
	return buf.String()
}

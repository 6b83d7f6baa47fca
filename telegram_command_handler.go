package main

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/telemetry_insights/domain/models"
	"github.com/pivolan/telemetry_insights/plot"
	"github.com/pivolan/telemetry_insights/provider"
)

// handleCommand routes analytics commands. Most commands need an
// uploaded dataset, /demo_* works without one.
func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	fullCommand := update.Message.Command()
	chatID := update.Message.Chat.ID

	demoPrefix := "demo_"
	if strings.HasPrefix(fullCommand, demoPrefix) {
		genre := strings.TrimPrefix(fullCommand, demoPrefix)
		handleDemoCommand(api, chatID, genre)
		return
	}

	switch fullCommand {
	case "start", "help":
		handleText(api, update)
	case "kpi":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatKPITable(s.Provider.KPIData()))
		})
	case "retention":
		withSession(api, chatID, func(s *analysisSession) {
			handleRetention(api, chatID, s.Provider)
		})
	case "funnel":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatFunnelTable(s.Provider.FunnelData()))
		})
	case "revenue", "revenue_day", "revenue_week", "revenue_month":
		withSession(api, chatID, func(s *analysisSession) {
			handleRevenue(api, chatID, s.Provider, revenuePeriod(fullCommand))
		})
	case "segments":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatSegmentsTable(s.Provider.SegmentData()))
		})
	case "spenders":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatSpendersTable(s.Provider.SpenderTiers()))
		})
	case "channels":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatChannelsTable(s.Provider.AttributionChannels()))
		})
	case "sessions":
		withSession(api, chatID, func(s *analysisSession) {
			handleSessions(api, chatID, s.Provider)
		})
	case "growth":
		withSession(api, chatID, func(s *analysisSession) {
			rate := s.Provider.HistoricalGrowthRate()
			sendPlain(api, chatID, fmt.Sprintf("Historical growth rate: %+.1f%% per day", rate*100))
		})
	case "columns":
		withSession(api, chatID, func(s *analysisSession) {
			sendPre(api, chatID, FormatColumnsTable(s.Stats, s.Roles))
		})
	case "report":
		withSession(api, chatID, func(s *analysisSession) {
			handleReport(api, chatID, s)
		})
	case "export":
		withSession(api, chatID, func(s *analysisSession) {
			handleExport(api, chatID, s)
		})
	default:
		sendPlain(api, chatID, "Unknown command, see /help for the list.")
	}
}

// withSession runs fn when the chat has an analyzed dataset.
func withSession(api *tgbotapi.BotAPI, chatID int64, fn func(*analysisSession)) {
	session, ok := getSession(chatID)
	if !ok {
		sendPlain(api, chatID, "Upload a CSV file first, or try /demo_casual.")
		return
	}
	fn(session)
}

func revenuePeriod(command string) models.Period {
	switch command {
	case "revenue_week":
		return models.PeriodWeek
	case "revenue_month":
		return models.PeriodMonth
	}
	return models.PeriodDay
}

func handleRetention(api *tgbotapi.BotAPI, chatID int64, p provider.DataProvider) {
	data := p.RetentionData()
	sendPre(api, chatID, FormatRetentionTable(data))
	if len(data.Days) == 0 {
		return
	}

	png, err := plot.DrawRetentionCurve(data.Days, data.Values, data.Benchmark)
	if err != nil {
		sendPlain(api, chatID, "Could not render the retention curve: "+err.Error())
		return
	}
	sendGraph(api, chatID, png, "retention", "Retention against the industry benchmark (dashed).")
}

func handleRevenue(api *tgbotapi.BotAPI, chatID int64, p provider.DataProvider, period models.Period) {
	points := p.RevenueTimeSeries(period)
	if len(points) == 0 {
		sendPre(api, chatID, FormatRevenueTable(p.RevenueData()))
		return
	}

	labels := make([]string, len(points))
	values := make([]float64, len(points))
	revenuePoints := make([]models.RevenuePoint, len(points))
	for i, pt := range points {
		labels[i] = pt.Date
		values[i] = pt.Value
		revenuePoints[i] = models.RevenuePoint{Date: pt.Date, Value: pt.Value}
	}
	sendPre(api, chatID, FormatRevenueTable(revenuePoints))

	title := fmt.Sprintf("Revenue by %s", period)
	png, err := plot.DrawPlotBar(plot.NewTimeSeriesData(labels, values, title))
	if err != nil {
		sendPlain(api, chatID, "Could not render the revenue graph: "+err.Error())
		return
	}
	sendGraph(api, chatID, png, "revenue", title)
}

func handleSessions(api *tgbotapi.BotAPI, chatID int64, p provider.DataProvider) {
	session := p.SessionMetrics()
	text := fmt.Sprintf(`Activity:

DAU: %d
MAU: %d
Avg session length: %.1f
Sessions per user: %.1f`,
		p.DAU(), p.MAU(), session.AvgSessionLength, session.SessionsPerUser)
	sendPlain(api, chatID, text)
}

func handleReport(api *tgbotapi.BotAPI, chatID int64, s *analysisSession) {
	html, err := RenderHTMLReport(s.Provider, s.Dataset.Name)
	if err != nil {
		sendPlain(api, chatID, "Could not build the report: "+err.Error())
		return
	}
	sendDocument(api, chatID, s.Dataset.Name+"_report.html", html, "Open in a browser for the interactive dashboard.")
}

func handleExport(api *tgbotapi.BotAPI, chatID int64, s *analysisSession) {
	tableName, err := ExportToWarehouse(s.Dataset, s.statsByName())
	if err != nil {
		sendPlain(api, chatID, "Export failed: "+err.Error())
		return
	}
	sendPlain(api, chatID, "Exported to warehouse table "+tableName)
}

// handleDemoCommand swaps the chat to a synthetic dataset so every
// command can be tried before uploading anything.
func handleDemoCommand(api *tgbotapi.BotAPI, chatID int64, genre string) {
	demo := provider.NewDemoDataProvider(models.Genre(genre))
	setSession(chatID, &analysisSession{
		Dataset:  &Dataset{Name: "demo_" + genre},
		Provider: demo,
	})
	sendPre(api, chatID, FormatKPITable(demo.KPIData()))
	sendPlain(api, chatID, "Demo data loaded, all commands now answer from it.")
}

func sendPre(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+text+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	api.Send(msg)
}

func sendPlain(api *tgbotapi.BotAPI, chatID int64, text string) {
	api.Send(tgbotapi.NewMessage(chatID, text))
}

package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/telemetry_insights/config"
)

var toDelete = map[string]time.Time{}

// telegram_handler.go

func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message
	text := message.Text

	// A bare message with numbers gets a quick statistical summary.
	numbers := ExtractNumbers(text)
	if len(numbers) > 0 {
		stats := AnalyzeNumbers(numbers)
		msg := tgbotapi.NewMessage(message.Chat.ID, FormatStats(stats))
		bot.Send(msg)
		return
	}

	welcomeText := `Hi! 👋

I turn raw product data into analytics. Upload a CSV file here, any
schema works: I detect user ids, timestamps, revenue, levels and events
on my own and build the reports from what I find.

What you get:
- KPI cards, DAU/MAU, ARPU, payer conversion
- Retention curve against an industry benchmark
- Funnels from levels or events
- Revenue over time, spender tiers, acquisition channels
- An HTML dashboard and a warehouse export

How to use me:
1. Send a CSV file right into the chat (gzip, lz4 and zip are fine)
2. Or send a sequence of numbers for a quick summary
3. Or send any message to get a web upload link

After an upload: /kpi /retention /funnel /revenue /segments /spenders
/channels /sessions /growth /columns /report /export
No data yet? Try /demo_casual, /demo_midcore or /demo_hardcore.`

	if message.Command() == "start" || message.Command() == "help" {
		msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
		bot.Send(msg)
		return
	}

	cfg := config.GetConfig()
	uid := uuid.NewV4()
	users[uid.String()] = message.Chat.ID
	toDelete[uid.String()] = time.Now()
	msg := tgbotapi.NewMessage(message.Chat.ID, "Upload your file via this link: "+cfg.PublicURL+"/?id="+uid.String())
	bot.Send(msg)
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		cfg := config.GetConfig()
		uid := uuid.NewV4()
		users[uid.String()] = message.Chat.ID
		toDelete[uid.String()] = time.Now()
		msg := tgbotapi.NewMessage(message.Chat.ID, "Could not fetch the file, it may be too big for the bot API. Upload it here instead: "+cfg.PublicURL+"/?id="+uid.String())
		bot.Send(msg)
		return
	}

	filePath := filepath.Join("uploads", strconv.Itoa(message.From.ID), message.Document.FileName)
	if err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	defer file.Close()
	if _, err = io.Copy(file, resp.Body); err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go func() {
		analyzeAndReply(bot, message.Chat.ID, filePath)
	}()
}

// analyzeAndReply runs the ingest pipeline and posts the overview.
func analyzeAndReply(bot *tgbotapi.BotAPI, chatID int64, filePath string) {
	session, err := ingestFile(filePath)
	if err != nil {
		log.Printf("ingest failed: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Could not analyze the file: "+err.Error())
		bot.Send(msg)
		return
	}
	setSession(chatID, session)

	summary := FormatSummary(session.Provider, session.Dataset.Name, len(session.Dataset.Rows))
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+summary+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)
}

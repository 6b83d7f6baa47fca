package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/telemetry_insights/config"
)

var users = map[string]int64{}
var bot *tgbotapi.BotAPI

func main() {
	cfg := config.GetConfig()

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error ", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	uploadTmpl := template.Must(template.New("upload").Parse(uploadPageTemplate))
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if err := uploadTmpl.Execute(w, id); err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
		}
	})
	http.HandleFunc("/upload", handleUpload)

	go func() {
		fmt.Println("listen on:", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error ", err)
	}

	// Upload links expire after an hour, stale files after two.
	go func() {
		for {
			time.Sleep(time.Minute)
			for uid, date := range toDelete {
				if time.Now().After(date.Add(time.Hour)) {
					delete(users, uid)
					delete(toDelete, uid)
				}
			}
			removeOldFiles("uploads", time.Now().Add(-time.Hour*2))
		}
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		switch {
		case update.Message.Document != nil:
			go handleDocument(bot, update.Message)
		case update.Message.IsCommand():
			go handleCommand(bot, update)
		case update.Message.Text != "":
			go handleText(bot, update)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())
		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}

		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			log.Printf("Removed file: %s", filePath)
		}
	}
	return nil
}

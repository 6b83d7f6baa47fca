package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const uploadPageTemplate = `<!DOCTYPE html>
<html>
<head><title>Upload your data</title></head>
<body>
<h1>Upload a CSV file</h1>
<p>Plain CSV or a gzip/lz4/zip archive. Results arrive in the Telegram chat.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
  <input type="hidden" name="uuid" value="{{.}}">
  <input type="file" name="file" required>
  <button type="submit">Upload</button>
</form>
</body>
</html>`

func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// The uuid ties the upload back to the chat that requested the link.
	uuid := r.FormValue("uuid")
	if uuid == "" {
		http.Error(w, "Error getting uuid", http.StatusBadRequest)
		return
	}

	os.MkdirAll(filepath.Join("uploads", uuid), 0755)
	filePath := filepath.Join("uploads", uuid, header.Filename)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error creating file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	if chatID, ok := users[uuid]; ok {
		msg := tgbotapi.NewMessage(chatID, "Your file is uploaded, analyzing now")
		bot.Send(msg)
	}

	go func(uuid string, filePath string) {
		if chatID, ok := users[uuid]; ok {
			analyzeAndReply(bot, chatID, filePath)
		}
	}(uuid, filePath)

	fmt.Fprintf(w, "File uploaded successfully")
}

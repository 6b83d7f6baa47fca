package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram compresses photos, larger renders go out as documents so the
// axis labels stay readable.
const maxSizePhoto = 150000

// sendGraph sends a rendered PNG to the chat with a caption.
func sendGraph(api *tgbotapi.BotAPI, chatID int64, graph []byte, name, caption string) {
	fileName := fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	var err error
	if len(graph) < maxSizePhoto {
		photoMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photoMsg.Caption = caption
		_, err = api.Send(photoMsg)
	} else {
		docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		docMsg.Caption = caption
		_, err = api.Send(docMsg)
	}
	if err != nil {
		log.Printf("error sending graph %s: %v", name, err)
		errMsg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send the %s graph: %v", name, err))
		api.Send(errMsg)
	}
}

// sendDocument sends generated file content as an attachment.
func sendDocument(api *tgbotapi.BotAPI, chatID int64, name string, content []byte, caption string) {
	data := tgbotapi.FileBytes{Name: name, Bytes: content}
	msg := tgbotapi.NewDocumentUpload(chatID, data)
	msg.Caption = caption
	if _, err := api.Send(msg); err != nil {
		log.Printf("error sending document %s: %v", name, err)
	}
}

package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	TgToken    string
	DbDsn      string
	ListenAddr string
	PublicURL  string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig loads .env once and returns the singleton config.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment")
		}

		config = &Config{
			TgToken:    os.Getenv("TG_TOKEN"),
			DbDsn:      os.Getenv("DB_DSN"),
			ListenAddr: os.Getenv("LISTEN_ADDR"),
			PublicURL:  os.Getenv("PUBLIC_URL"),
		}
		if config.ListenAddr == "" {
			config.ListenAddr = ":8005"
		}
		if config.PublicURL == "" {
			config.PublicURL = "http://localhost" + config.ListenAddr
		}
	})
	return config
}

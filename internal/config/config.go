package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keeps runtime settings for the planner.
type Config struct {
	DatabaseURL     string
	HTTPAddr        string
	Debug           bool
	ShutdownTimeout time.Duration

	TelegramToken  string
	TelegramChatID int64
	ReportTime     string
	ReportInterval time.Duration
	Location       *time.Location
}

// BotEnabled reports whether a Telegram token was configured.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from an optional .env file and environment variables.
// Variables already set in the environment win over the .env file.
func Load(dotEnvPath string) (Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", dotEnvPath, err)
			}
			log.Printf("[info] loaded %s", dotEnvPath)
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat %s: %w", dotEnvPath, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("DATABASE_URL", "study_planner.db")
	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("TELEGRAM_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", int64(0))
	v.SetDefault("REPORT_TIME", "20:00")
	v.SetDefault("REPORT_INTERVAL_HOURS", 0)
	v.SetDefault("TIMEZONE", "Local")
	v.AutomaticEnv()

	cfg := Config{
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		HTTPAddr:        strings.TrimSpace(v.GetString("HTTP_ADDR")),
		Debug:           v.GetBool("DEBUG"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		TelegramToken:   strings.TrimSpace(v.GetString("TELEGRAM_TOKEN")),
		TelegramChatID:  v.GetInt64("TELEGRAM_CHAT_ID"),
		ReportTime:      strings.TrimSpace(v.GetString("REPORT_TIME")),
	}

	if hours := v.GetInt("REPORT_INTERVAL_HOURS"); hours > 0 {
		cfg.ReportInterval = time.Duration(hours) * time.Hour
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "study_planner.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":5000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	loc, err := loadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	Enabled      bool   `yaml:"enabled"`
}

type TelegramConfig struct {
	BotToken       string `yaml:"bot_token"`
	ManagersChatID int64  `yaml:"managers_chat_id"`
}

type PaymentsConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
	// ExposeSMSCode — отдавать ли plaintext-код в ответе initiate.
	// Рабочий режим симуляции: реального SMS-канала нет.
	ExposeSMSCode bool   `yaml:"expose_sms_code"`
	ReceiptsDir   string `yaml:"receipts_dir"`
	FontPath      string `yaml:"font_path"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Payments PaymentsConfig `yaml:"payments"`
}

func LoadConfig() *Config {
	// .env не обязателен, переменные могут прийти из окружения
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] .env not loaded: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open config: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config: " + err.Error())
	}

	applyEnvOverrides(&cfg)

	if cfg.Payments.DefaultCurrency == "" {
		cfg.Payments.DefaultCurrency = "RUB"
	}
	if cfg.Payments.ReceiptsDir == "" {
		cfg.Payments.ReceiptsDir = "./files/receipts"
	}
	return &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Auth     AuthConfig
	Gemini   GeminiConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	LogLevel       string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// StoreConfig selects the persisted store backend: memory, sqlite, mysql or postgres.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	MySQLDSN    string
	PostgresURL string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	ttlHours, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "12"))
	geminiTimeout, _ := strconv.Atoi(getEnv("GEMINI_TIMEOUT_SECONDS", "60"))
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			SQLitePath:  getEnv("SQLITE_PATH", "pos.db"),
			MySQLDSN:    getEnv("MYSQL_DSN", ""),
			PostgresURL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: time.Duration(geminiTimeout) * time.Second,
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_TOKEN", ""),
			ChatID: chatID,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

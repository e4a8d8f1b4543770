package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SuperAdmin is the account seeded on startup when no user with Email exists.
type SuperAdmin struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	ServerAddr string
	GinMode    string
	LogLevel   slog.Level
	MySQLDSN   string
	Redis      Redis
	JWT        JWT
	Kafka      Kafka
	SMTP       SMTP
	SuperAdmin SuperAdmin
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseLevel(value string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   parseLevel(getEnv("LOG_LEVEL", "info")),
		MySQLDSN:   getEnv("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/club_hub_db?charset=utf8mb4&parseTime=True&loc=Local"),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWT{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			AccessTTL:     parseDuration(getEnv("ACCESS_TOKEN_TTL", "30m"), 30*time.Minute),
			RefreshTTL:    parseDuration(getEnv("REFRESH_TOKEN_TTL", "24h"), 24*time.Hour),
		},
		Kafka: Kafka{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "club-activity"),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "ClubHub <no-reply@clubhub.local>"),
		},
		SuperAdmin: SuperAdmin{
			Username: getEnv("SUPERADMIN_USERNAME", "SuperAdmin"),
			Email:    getEnv("SUPERADMIN_EMAIL", "admin@clubhub.com"),
			Password: getEnv("SUPERADMIN_PASSWORD", ""),
		},
	}
}

// Load reads .env (if present) into the environment and then builds the Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("config: .env file not found, using environment variables")
	}
	return FromEnv()
}

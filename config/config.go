package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	DB   DB

	JWTAccessSecret string

	KafkaBrokers           []string
	KafkaTopicNotification string
	KafkaGroupID           string

	Redis Redis

	SMTP SMTP
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:        getEnv("DB_HOST", log),
				Port:        getEnv("DB_PORT", log),
				User:        getEnv("DB_USER", log),
				Password:    getEnv("DB_PASSWORD", log),
				Name:        getEnv("DB_NAME", log),
				SSLMode:     getEnv("DB_SSLMODE", log),
				LockTimeout: durationDefault(os.Getenv("DB_LOCK_TIMEOUT"), 3*time.Second),
			},
		},
		JWTAccessSecret:        getEnv("JWT_ACCESS_SECRET", log),
		KafkaBrokers:           splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicNotification: getEnvDefault("KAFKA_TOPIC_NOTIFICATIONS", "marketplace.notifications"),
		KafkaGroupID:           getEnvDefault("KAFKA_GROUP_ID", "notifier"),
		Redis: Redis{
			Enabled:    os.Getenv("REDIS_ENABLED") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     atoiDefault(os.Getenv("SMTP_PORT"), 465),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func durationDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}

package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port         string
	DataFile     string
	JWTSecret    string
	TokenTTL     time.Duration
	RedisAddr    string
	KafkaBrokers []string
	CORSOrigins  []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from the environment. cmd mains load .env via
// godotenv before calling this.
func Load() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		DataFile:     getenv("DATA_FILE", "data/dayflow.json"),
		JWTSecret:    getenv("JWT_SECRET", ""),
		TokenTTL:     getenvDuration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: getenvList("KAFKA_BROKERS"),
		CORSOrigins:  getenvListDefault("CORS_ORIGINS", []string{"http://localhost:5173"}),

		ReadTimeout:  getenvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getenvDuration("WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getenvDuration("IDLE_TIMEOUT", 60*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getenvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvListDefault(key string, fallback []string) []string {
	if v := getenvList(key); v != nil {
		return v
	}
	return fallback
}

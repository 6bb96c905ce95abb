package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Config is loaded from environment variables; cmd loads a .env file first
// when one exists.
type Config struct {
	Addr                string
	DatabaseDSN         string
	PageSize            int
	ScanIntervalSeconds int
	AIEndpoint          string
	AIAPIKey            string
	HolidayEndpoint     string
}

func Load() Config {
	host := getEnv("APP_HOST", "127.0.0.1")
	port := getEnv("APP_PORT", "8080")

	cfg := Config{
		Addr:                fmt.Sprintf("%s:%s", host, port),
		DatabaseDSN:         getEnv("DATABASE_DSN", "taskmaster.db"),
		PageSize:            getEnvAsInt("PAGE_SIZE", 10),
		ScanIntervalSeconds: getEnvAsInt("DUE_SCAN_INTERVAL_SECONDS", 60),
		AIEndpoint:          getEnv("AI_BREAKDOWN_ENDPOINT", ""),
		AIAPIKey:            getEnv("AI_BREAKDOWN_API_KEY", ""),
		HolidayEndpoint:     getEnv("HOLIDAY_ENDPOINT", ""),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.PageSize <= 0 {
		log.Fatal("PAGE_SIZE must be greater than 0")
	}
	if cfg.ScanIntervalSeconds <= 0 {
		log.Fatal("DUE_SCAN_INTERVAL_SECONDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

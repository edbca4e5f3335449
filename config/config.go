package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config - service configuration from environment variables
type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	SceneFile       string
	SceneResolution float64
	PlanTimeout     time.Duration

	DBDriver      string // "mysql" | "sqlite" | "" (no persistence)
	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string
	SQLitePath    string

	LogFlushSize     int
	LogFlushInterval time.Duration
}

// Load - read configuration; unset or invalid values fall back to defaults
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),

		SceneFile:       getEnv("SCENE_FILE", ""),
		SceneResolution: getEnvAsFloat("SCENE_RESOLUTION", 0.1),
		PlanTimeout:     time.Duration(getEnvAsInt("PLAN_TIMEOUT_MS", 5000)) * time.Millisecond,

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "")),
		MySQLHost:     getEnv("MYSQL_HOST", ""),
		MySQLPort:     getEnvAsInt("MYSQL_PORT", 3306),
		MySQLUser:     getEnv("MYSQL_USER", ""),
		MySQLPassword: getEnv("MYSQL_PASSWORD", ""),
		MySQLDatabase: getEnv("MYSQL_DATABASE", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "planner.db"),

		LogFlushSize:     getEnvAsInt("LOG_FLUSH_SIZE", 50),
		LogFlushInterval: time.Duration(getEnvAsInt("LOG_FLUSH_INTERVAL_S", 10)) * time.Second,
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

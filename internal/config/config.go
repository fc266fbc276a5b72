package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Server ServerConfig
	App    AppConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

type AppConfig struct {
	Env         string
	DatabaseDSN string
	// AccessCode is the shared secret the gate compares submissions against.
	// This is access obfuscation for a single-user tool, not real authentication.
	AccessCode string
	// LogoPath is a file path or http(s) URL; the PDF header falls back to a
	// text banner when the asset cannot be loaded.
	LogoPath string
}

// Load reads configuration from environment variables with defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("IDLE_TIMEOUT", 60),
		},
		App: AppConfig{
			Env:         getEnv("APP_ENV", "development"),
			DatabaseDSN: getEnv("DATABASE_DSN", "file:billing.db"),
			AccessCode:  getEnv("ACCESS_CODE", "zxcvbnm"),
			LogoPath:    getEnv("LOGO_PATH", "web/static/logo.png"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

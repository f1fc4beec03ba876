package config

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Driver string
	DSN    string // Data Source Name, kosong berarti ledger in-memory
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type CartConfig struct {
	SweepSpec string // cron spec, dengan detik
}

type CatalogConfig struct {
	File     string // YAML, kosong berarti katalog bawaan
	PageSize int
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := GetEnv("PORT", defaultPort)
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

// Order ledger: tanpa ORDER_DB_DSN pesanan hanya disimpan di memori.
func LoadOrderDBConfig() DBConfig {
	return DBConfig{
		Driver: GetEnv("DB_DRIVER", "pgx"),
		DSN:    os.Getenv("ORDER_DB_DSN"),
	}
}

func LoadSessionConfig() SessionConfig {
	secret := GetEnv("SESSION_SECRET", "")
	if secret == "" {
		secret = "insecure-dev-session-secret" // fallback, hanya untuk lokal
	}
	return SessionConfig{
		Secret:       secret,
		TTL:          GetEnvAsDuration("SESSION_TTL", 24*time.Hour),
		CookieName:   GetEnv("SESSION_COOKIE", "sid"),
		CookieSecure: GetEnvAsBool("COOKIE_SECURE", GetEnv("APP_ENV", "dev") == "production"),
	}
}

func LoadCartConfig() CartConfig {
	return CartConfig{
		SweepSpec: GetEnv("CART_SWEEP_SPEC", "0 * * * * *"), // tiap menit
	}
}

func LoadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		File:     os.Getenv("CATALOG_FILE"),
		PageSize: GetEnvAsInt("CATALOG_PAGE_SIZE", 6),
	}
}

// Helper untuk mendapatkan Environment Variable jika ada, atau default
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	strValue := GetEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := GetEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}

// Package config loads application configuration from environment
// variables.  Required variables are enforced at startup; optional ones
// fall back to defaults documented next to each loader.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env          string // APP_ENV: dev, test or prod
	Port         string // APP_PORT
	LogLevel     string // LOG_LEVEL: debug, info, warn or error (optional)
	DBUser       string // DB_USER
	DBPass       string // DB_PASS (optional)
	DBHost       string // DB_HOST
	DBPort       string // DB_PORT
	DBName       string // DB_NAME
	DBMigrate    bool   // DB_MIGRATE: apply the embedded schema at startup
	JWTSecret    string // JWT_SECRET
	AccessTTLMin int    // ACCESS_TOKEN_TTL_MIN, used when minting tokens
	Booking      BookingConfig
	Broker       BrokerConfig
}

// Load reads configuration values from environment variables and returns
// a Config.  Missing required variables cause the program to exit with a
// fatal log message.
func Load() Config {
	booking, err := LoadBookingConfig()
	if err != nil {
		log.Fatalf("booking config: %v", err)
	}
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		DBMigrate:    envBool("DB_MIGRATE", false),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		Booking:      booking,
		Broker:       LoadBrokerConfig(),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

// DSN builds the MySQL data source name.  parseTime maps DATE and DATETIME
// to time.Time and loc=UTC reads them as UTC.  The session time_zone is
// pinned to UTC too, so CURRENT_TIMESTAMP defaults on created_at agree
// with the UTC instants the repositories compare against.
func (c Config) DSN() string {
	auth := c.DBUser
	if c.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", c.DBUser, c.DBPass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&time_zone=%s",
		auth, c.DBHost, c.DBPort, c.DBName, url.QueryEscape("'+00:00'"))
}

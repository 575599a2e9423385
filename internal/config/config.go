// Package config reads process settings from the environment, optionally
// seeded from a .env file. Every field has a usable default so wrkt runs
// with no configuration at all.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings.
type Config struct {
	// DeviceID names this device; sessions only accept samples carrying
	// it. Defaults to the hostname. WRKT_DEVICE_ID.
	DeviceID string

	// DBPath is the sqlite file for finished sessions. Defaults to
	// ~/.wrkt/wrkt.db. WRKT_DB_PATH.
	DBPath string

	// StatusAddr is the listen address for the read-only status API.
	// Empty (the default) disables it. WRKT_STATUS_ADDR.
	StatusAddr string

	// SampleInterval is how often the simulated source delivers a batch
	// per metric. WRKT_SIM_INTERVAL_MS, default 1000.
	SampleInterval time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	return Config{
		DeviceID:       getenvDefault("WRKT_DEVICE_ID", defaultDeviceID()),
		DBPath:         getenvDefault("WRKT_DB_PATH", defaultDBPath()),
		StatusAddr:     os.Getenv("WRKT_STATUS_ADDR"),
		SampleInterval: time.Duration(getenvInt("WRKT_SIM_INTERVAL_MS", 1000)) * time.Millisecond,
	}
}

func defaultDeviceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "wrkt-local"
	}
	return host
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wrkt.db"
	}
	return filepath.Join(home, ".wrkt", "wrkt.db")
}

// getenvDefault returns the env value or a fallback when unset.
func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, fallback)
		return fallback
	}
	return n
}

package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment
// variables with defaults that match the original deployment.
type Config struct {
	// DataFile is the flat-file account book.
	DataFile string
	// Delimiter separates fields in the data file: '|' or ';'.
	Delimiter byte
	// StartNumber is the first account number ever assigned.
	StartNumber int
	// Currency is the display suffix used by the shell.
	Currency string
	// MetricsAddr enables the Prometheus endpoint when non-empty,
	// e.g. ":9090".
	MetricsAddr string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		DataFile:    getEnv("UMABANK_DATA_FILE", "contas.txt"),
		Delimiter:   getEnvDelim("UMABANK_DELIMITER", '|'),
		StartNumber: getEnvInt("UMABANK_START_NUMBER", 1000),
		Currency:    getEnv("UMABANK_CURRENCY", "AOA"),
		MetricsAddr: getEnv("UMABANK_METRICS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// getEnvDelim accepts only the two supported delimiters; anything else
// falls back, since a bad delimiter would silently corrupt the book.
func getEnvDelim(key string, fallback byte) byte {
	switch os.Getenv(key) {
	case "|":
		return '|'
	case ";":
		return ';'
	}
	return fallback
}

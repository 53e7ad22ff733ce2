package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CurrencyModeCompat    = "compat"
	CurrencyModeCorrected = "corrected"
)

// Config holds everything the server, the reload worker and the export CLI need.
type Config struct {
	Port string

	// Dataset
	DatasetPath  string
	RatesPath    string // empty means the bundled rate table
	CurrencyMode string

	// Data cleaning
	OutlierName       string
	OutlierMinCostUSD float64
	CostSanityUSD     float64

	// Background reload, 0 disables it
	ReloadInterval time.Duration

	// HTTP
	AllowedOrigins []string

	// Optional sinks
	DatabaseURL string
	SQLitePath  string

	LogLevel string
}

// Load reads .env (if present) and the process environment, falling back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "3003"),
		DatasetPath:       getEnv("DATASET_PATH", "dataset/zomato.csv"),
		RatesPath:         os.Getenv("RATES_PATH"),
		CurrencyMode:      strings.ToLower(getEnv("CURRENCY_MODE", CurrencyModeCompat)),
		OutlierName:       getEnv("OUTLIER_NAME", "d'Arry's Verandah Restaurant"),
		OutlierMinCostUSD: getEnvFloat("OUTLIER_MIN_COST_USD", 1000000),
		CostSanityUSD:     getEnvFloat("COST_SANITY_USD", 10000),
		ReloadInterval:    getEnvDuration("RELOAD_INTERVAL", 0),
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8501"}),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        os.Getenv("SQLITE_PATH"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH must not be empty")
	}
	switch c.CurrencyMode {
	case CurrencyModeCompat, CurrencyModeCorrected:
	default:
		return fmt.Errorf("unknown CURRENCY_MODE %q (want %s or %s)", c.CurrencyMode, CurrencyModeCompat, CurrencyModeCorrected)
	}
	if c.OutlierMinCostUSD < 0 {
		return fmt.Errorf("OUTLIER_MIN_COST_USD must be >= 0, got %v", c.OutlierMinCostUSD)
	}
	if c.CostSanityUSD < 0 {
		return fmt.Errorf("COST_SANITY_USD must be >= 0, got %v", c.CostSanityUSD)
	}
	if c.ReloadInterval < 0 {
		return fmt.Errorf("RELOAD_INTERVAL must be >= 0, got %v", c.ReloadInterval)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

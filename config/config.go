package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	Port        string
	CORSOrigins []string

	// Database configuration
	DatabaseURL string

	// Auth configuration
	JWTSecret string

	// Ledger configuration
	StartingCoins         int64
	MinimumCartPercentage float64 // fraction of balance a cart total must reach

	// Environment
	Environment string // "development", "production", or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		// Ledger settings with defaults
		StartingCoins:         2000,
		MinimumCartPercentage: 0.10,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.Port == "" {
		config.Port = "3001"
	}

	// Override defaults if environment variables are set
	if coins := os.Getenv("STARTING_COINS"); coins != "" {
		if parsedCoins, err := strconv.ParseInt(coins, 10, 64); err == nil {
			config.StartingCoins = parsedCoins
		}
	}
	if pct := os.Getenv("MINIMUM_CART_PERCENTAGE"); pct != "" {
		if parsedPct, err := strconv.ParseFloat(pct, 64); err == nil && parsedPct >= 0 && parsedPct < 1 {
			config.MinimumCartPercentage = parsedPct
		}
	}

	// Parse allowed CORS origins
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				config.CORSOrigins = append(config.CORSOrigins, origin)
			}
		}
	} else {
		config.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}

	return config, nil
}

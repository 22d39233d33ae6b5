package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"propbook/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Odds aggregator configuration
	OddsAPIKey     string
	OddsAPIBaseURL string

	// Single-book (DraftKings) configuration
	DraftKingsBaseURL string
	DraftKingsLeague  string

	// Results/roster provider (ESPN) configuration
	ESPNBaseURL string

	// Account configuration
	StartingBalance float64

	// HTTP configuration
	RequestTimeout time.Duration

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Providers
		OddsAPIKey:        os.Getenv("ODDS_API_KEY"),
		OddsAPIBaseURL:    getEnvWithDefault("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		DraftKingsBaseURL: getEnvWithDefault("DRAFTKINGS_BASE_URL", "https://sportsbook-nash.draftkings.com/sites/US-LA-SB/api/sportscontent/controldata/league/leagueSubcategory/v1/markets"),
		DraftKingsLeague:  getEnvWithDefault("DRAFTKINGS_LEAGUE_ID", "88808"),
		ESPNBaseURL:       getEnvWithDefault("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/football/nfl"),

		// Account settings with defaults
		StartingBalance: 1000,

		// Upstream calls are bounded only by this timeout
		RequestTimeout: 30 * time.Second,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseFloat(balance, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
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
		if config.OddsAPIKey == "" {
			return nil, fmt.Errorf("ODDS_API_KEY is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		StartingBalance: 1000,
		RequestTimeout:  30 * time.Second,
	}
}

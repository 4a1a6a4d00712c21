// Package config holds the runtime settings for the browser, the catalog
// store and the optional graph and guide integrations.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"travelbrowser/internal/catalog"
)

// Config contains configurable parameters for travelbrowser.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	// Catalog store
	DBPath     string // DuckDB file; empty or ":memory:" for an in-memory catalog
	Seed       bool   // Seed an empty catalog with the bundled destinations (default: true)
	DBThreads  int    // DuckDB worker threads (0 = DuckDB default)
	DBMemoryMB int    // DuckDB memory limit in MB (0 = DuckDB default)

	// Browsing
	Locale           string            // BCP 47 tag for name collation (default: "en")
	InitialSort      catalog.SortOrder // Sort order before any sort command (default: Natural)
	VisibleThreshold float64           // Fraction of a card that must be on screen (default: 0.3)
	CardWidth        int               // Card width in cells (default: 30)
	FetchTimeout     time.Duration     // Timeout for one catalog reload (default: 5s)

	// Graph mirror (disabled when Neo4jURI is empty)
	Neo4jURI          string
	Neo4jUser         string
	Neo4jPassword     string
	Neo4jDatabase     string
	GraphSyncInterval time.Duration // How often the catalog is mirrored (default: 60s)
	GraphResetOnStop  bool          // Wipe the mirror on shutdown

	// Guide (disabled when GeminiAPIKey is empty)
	GeminiAPIKey string
	GeminiModel  string // flash, pro, flash-2, experimental (default: flash)

	// Logging
	LogDir string // Empty means ~/.travelbrowser/logs
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath: "",
		Seed:   true,

		Locale:           "en",
		InitialSort:      catalog.Natural,
		VisibleThreshold: 0.3,
		CardWidth:        30,
		FetchTimeout:     5 * time.Second,

		Neo4jUser:         "neo4j",
		Neo4jDatabase:     "neo4j",
		GraphSyncInterval: 60 * time.Second,

		GeminiModel: "flash",
	}
}

// WithDBPath returns a copy of the config using the given DuckDB file.
func (c Config) WithDBPath(path string) Config {
	c.DBPath = path
	return c
}

// WithLocale returns a copy of the config with a different collation locale.
func (c Config) WithLocale(tag string) Config {
	c.Locale = tag
	return c
}

// WithInitialSort returns a copy of the config with a different starting order.
func (c Config) WithInitialSort(order catalog.SortOrder) Config {
	c.InitialSort = order
	return c
}

// WithVisibleThreshold returns a copy of the config with a different visibility threshold.
func (c Config) WithVisibleThreshold(t float64) Config {
	c.VisibleThreshold = t
	return c
}

// WithCardWidth returns a copy of the config with a different card width.
func (c Config) WithCardWidth(w int) Config {
	c.CardWidth = w
	return c
}

// GraphEnabled reports whether a Neo4j mirror is configured.
func (c Config) GraphEnabled() bool {
	return c.Neo4jURI != ""
}

// GuideEnabled reports whether a Gemini key is configured.
func (c Config) GuideEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.VisibleThreshold < 0 || c.VisibleThreshold > 1 {
		return &ConfigError{Field: "VisibleThreshold", Message: "must be between 0 and 1"}
	}
	if c.CardWidth < 12 {
		return &ConfigError{Field: "CardWidth", Message: "must be at least 12"}
	}
	if c.FetchTimeout <= 0 {
		return &ConfigError{Field: "FetchTimeout", Message: "must be positive"}
	}
	if c.Locale == "" {
		return &ConfigError{Field: "Locale", Message: "must not be empty"}
	}
	if c.DBThreads < 0 {
		return &ConfigError{Field: "DBThreads", Message: "must not be negative"}
	}
	if c.DBMemoryMB < 0 {
		return &ConfigError{Field: "DBMemoryMB", Message: "must not be negative"}
	}
	if c.GraphEnabled() && c.GraphSyncInterval <= 0 {
		return &ConfigError{Field: "GraphSyncInterval", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

// FromEnv overlays environment variables on top of base. Malformed values
// are reported as a *ConfigError.
func FromEnv(base Config) (Config, error) {
	c := base
	if v, ok := os.LookupEnv("TRAVEL_DB_PATH"); ok {
		c.DBPath = v
	}
	if v := os.Getenv("TRAVEL_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("TRAVEL_SORT"); v != "" {
		order, err := catalog.ParseSortOrder(v)
		if err != nil {
			return base, &ConfigError{Field: "InitialSort", Message: err.Error()}
		}
		c.InitialSort = order
	}
	if v := os.Getenv("TRAVEL_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return base, &ConfigError{Field: "VisibleThreshold", Message: "not a number: " + v}
		}
		c.VisibleThreshold = f
	}
	if v := os.Getenv("TRAVEL_DB_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, &ConfigError{Field: "DBThreads", Message: "not an integer: " + v}
		}
		c.DBThreads = n
	}
	if v := os.Getenv("TRAVEL_DB_MEMORY_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, &ConfigError{Field: "DBMemoryMB", Message: "not an integer: " + v}
		}
		c.DBMemoryMB = n
	}
	if v := os.Getenv("TRAVEL_GRAPH_RESET_ON_STOP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, &ConfigError{Field: "GraphResetOnStop", Message: "not a boolean: " + v}
		}
		c.GraphResetOnStop = b
	}
	if v := os.Getenv("TRAVEL_NO_SEED"); v != "" {
		c.Seed = false
	}
	if v := os.Getenv("TRAVEL_LOG_DIR"); v != "" {
		c.LogDir = v
	}

	c.Neo4jURI = envOr("NEO4J_URI", c.Neo4jURI)
	c.Neo4jUser = envOr("NEO4J_USER", c.Neo4jUser)
	c.Neo4jPassword = envOr("NEO4J_PASSWORD", c.Neo4jPassword)
	c.Neo4jDatabase = envOr("NEO4J_DATABASE", c.Neo4jDatabase)
	c.GeminiAPIKey = envOr("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = envOr("GEMINI_MODEL", c.GeminiModel)

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnvFile sets KEY=VALUE pairs from a .env file. Missing files are ignored.
func LoadEnvFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}

	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"'`)
			os.Setenv(key, value)
		}
	}
}

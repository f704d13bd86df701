package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds selectable via DATA_SOURCE.
const (
	SourceCSV     = "csv"
	SourceSocrata = "socrata"
	SourceSQLite  = "sqlite"
)

type Config struct {
	// HTTP Server
	Port string

	// Record source selection
	DataSource string

	// Bulk CSV source
	CSVPath string

	// Remote JSON source
	SocrataURL string

	// Seeded SQLite dataset source
	SQLiteDBPath string

	// Load memoization
	CacheSize int
	CacheTTL  time.Duration

	// Invalidate memoized loads when the local dataset file changes
	WatchDataset bool
}

// fileConfig is the optional YAML config file shape. Environment
// variables override anything set here.
type fileConfig struct {
	Port         string `yaml:"port"`
	DataSource   string `yaml:"data_source"`
	CSVPath      string `yaml:"csv_path"`
	SocrataURL   string `yaml:"socrata_url"`
	SQLiteDBPath string `yaml:"sqlite_db_path"`
	CacheSize    int    `yaml:"cache_size"`
	CacheTTL     string `yaml:"cache_ttl"`
	WatchDataset bool   `yaml:"watch_dataset"`
}

// Load builds the configuration from defaults, an optional YAML file
// named by CONFIG_FILE, and environment variables, in that order of
// precedence (env wins).
func Load() (*Config, error) {
	cfg := &Config{
		Port:         "8080",
		DataSource:   SourceCSV,
		CSVPath:      "./data/Cleaned_Open311.csv",
		SocrataURL:   "https://bloomington.data.socrata.com/resource/aw6y-t4ix.json",
		SQLiteDBPath: "./data/requests.db",
		CacheSize:    64,
		CacheTTL:     10 * time.Minute,
		WatchDataset: false,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DataSource = getEnv("DATA_SOURCE", cfg.DataSource)
	cfg.CSVPath = getEnv("CSV_PATH", cfg.CSVPath)
	cfg.SocrataURL = getEnv("SOCRATA_URL", cfg.SocrataURL)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.CacheSize = getEnvInt("CACHE_SIZE", cfg.CacheSize)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.WatchDataset = getEnvBool("WATCH_DATASET", cfg.WatchDataset)

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.DataSource != "" {
		c.DataSource = fc.DataSource
	}
	if fc.CSVPath != "" {
		c.CSVPath = fc.CSVPath
	}
	if fc.SocrataURL != "" {
		c.SocrataURL = fc.SocrataURL
	}
	if fc.SQLiteDBPath != "" {
		c.SQLiteDBPath = fc.SQLiteDBPath
	}
	if fc.CacheSize != 0 {
		c.CacheSize = fc.CacheSize
	}
	if fc.CacheTTL != "" {
		d, err := time.ParseDuration(fc.CacheTTL)
		if err != nil {
			return fmt.Errorf("parse cache_ttl %q in %s: %w", fc.CacheTTL, path, err)
		}
		c.CacheTTL = d
	}
	if fc.WatchDataset {
		c.WatchDataset = true
	}
	return nil
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case SourceCSV:
		if c.CSVPath == "" {
			errors = append(errors, "CSV path cannot be empty when using the csv source")
		}
	case SourceSocrata:
		if parsed, err := url.Parse(c.SocrataURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid Socrata URL '%s': %v", c.SocrataURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid Socrata URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	case SourceSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite dataset path cannot be empty when using the sqlite source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of [csv socrata sqlite]", c.DataSource))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	} else if c.CacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 10000", c.CacheSize))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}

	if c.WatchDataset && c.DataSource == SourceSocrata {
		errors = append(errors, "dataset watching only applies to local sources (csv, sqlite)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// DatasetPath returns the local file the watcher should observe, empty
// for remote sources.
func (c *Config) DatasetPath() string {
	switch c.DataSource {
	case SourceCSV:
		return c.CSVPath
	case SourceSQLite:
		return c.SQLiteDBPath
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

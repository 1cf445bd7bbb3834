// Package config loads and validates the coinsync YAML configuration.
package config

import "time"

// Config is the root configuration for a coinsync run.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Database  DBConfig        `yaml:"database"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Backfill  BackfillConfig  `yaml:"backfill"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// APIConfig holds upstream market-data API settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// APIKeys are rotated round-robin, one advance per request attempt.
	// With an empty list requests are sent unauthenticated.
	APIKeys       []string      `yaml:"api_keys"`
	QuoteCurrency string        `yaml:"quote_currency"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// DiscoveryConfig holds symbol discovery and liveness probe settings.
type DiscoveryConfig struct {
	PageSize      int           `yaml:"page_size"`
	MaxPages      int           `yaml:"max_pages"`
	TargetSymbols int           `yaml:"target_symbols"`
	PageDelay     time.Duration `yaml:"page_delay"`
	ProbeDelay    time.Duration `yaml:"probe_delay"`
}

// BackfillConfig holds historical backfill settings.
type BackfillConfig struct {
	ChunkDays    int           `yaml:"chunk_days"`
	StartDate    string        `yaml:"start_date"` // YYYY-MM-DD, lower bound for full backfills
	RequestDelay time.Duration `yaml:"request_delay"`
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	SymbolDelay time.Duration `yaml:"symbol_delay"`
	Concurrency int           `yaml:"concurrency"`
}

// StartDateTime parses Backfill.StartDate as a UTC calendar day.
// Validate guarantees the format, so errors only occur on unvalidated configs.
func (c *Config) StartDateTime() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.Backfill.StartDate, time.UTC)
}

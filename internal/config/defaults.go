package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL       = "https://min-api.cryptocompare.com"
	DefaultQuoteCurrency = "USD"
	DefaultAPITimeout    = 15 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 1500 * time.Millisecond

	DefaultDBPort   = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns = 10
	DefaultMinConns = 2

	DefaultPageSize      = 100
	DefaultMaxPages      = 15
	DefaultTargetSymbols = 1000
	DefaultPageDelay     = 600 * time.Millisecond
	DefaultProbeDelay    = 200 * time.Millisecond

	DefaultChunkDays    = 1800
	DefaultStartDate    = "2010-01-01"
	DefaultRequestDelay = time.Second

	DefaultSymbolDelay = 200 * time.Millisecond
	DefaultConcurrency = 1
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.QuoteCurrency == "" {
		c.API.QuoteCurrency = DefaultQuoteCurrency
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryDelay == 0 {
		c.API.RetryDelay = DefaultRetryDelay
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Discovery defaults
	if c.Discovery.PageSize == 0 {
		c.Discovery.PageSize = DefaultPageSize
	}
	if c.Discovery.MaxPages == 0 {
		c.Discovery.MaxPages = DefaultMaxPages
	}
	if c.Discovery.TargetSymbols == 0 {
		c.Discovery.TargetSymbols = DefaultTargetSymbols
	}
	if c.Discovery.PageDelay == 0 {
		c.Discovery.PageDelay = DefaultPageDelay
	}
	if c.Discovery.ProbeDelay == 0 {
		c.Discovery.ProbeDelay = DefaultProbeDelay
	}

	// Backfill defaults
	if c.Backfill.ChunkDays == 0 {
		c.Backfill.ChunkDays = DefaultChunkDays
	}
	if c.Backfill.StartDate == "" {
		c.Backfill.StartDate = DefaultStartDate
	}
	if c.Backfill.RequestDelay == 0 {
		c.Backfill.RequestDelay = DefaultRequestDelay
	}

	// Pipeline defaults
	if c.Pipeline.SymbolDelay == 0 {
		c.Pipeline.SymbolDelay = DefaultSymbolDelay
	}
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = DefaultConcurrency
	}
}

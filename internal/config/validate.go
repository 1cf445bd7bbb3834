package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.MaxRetries < 1 {
		return errors.New("api.max_retries must be >= 1")
	}
	for i, key := range c.API.APIKeys {
		if key == "" {
			return fmt.Errorf("api.api_keys[%d] is empty", i)
		}
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Discovery.PageSize < 1 {
		return errors.New("discovery.page_size must be >= 1")
	}
	if c.Discovery.MaxPages < 1 {
		return errors.New("discovery.max_pages must be >= 1")
	}
	if c.Discovery.TargetSymbols < 1 {
		return errors.New("discovery.target_symbols must be >= 1")
	}

	if c.Backfill.ChunkDays < 1 {
		return errors.New("backfill.chunk_days must be >= 1")
	}
	if _, err := time.ParseInLocation("2006-01-02", c.Backfill.StartDate, time.UTC); err != nil {
		return fmt.Errorf("backfill.start_date must be YYYY-MM-DD, got %q", c.Backfill.StartDate)
	}

	if c.Pipeline.Concurrency < 1 {
		return errors.New("pipeline.concurrency must be >= 1")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

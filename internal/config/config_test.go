package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coinsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const validYAML = `
api:
  base_url: https://min-api.example.com
  api_keys:
    - key-one
    - key-two
database:
  host: localhost
  port: 5432
  name: crypto_app
  user: testuser
  password: testpass
`

func TestLoad(t *testing.T) {
	path := writeTempFile(t, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://min-api.example.com" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://min-api.example.com")
	}
	if len(cfg.API.APIKeys) != 2 {
		t.Errorf("len(API.APIKeys) = %d, want 2", len(cfg.API.APIKeys))
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
database:
  host: localhost
  name: crypto_app
  user: testuser
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, validYAML)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.API.MaxRetries != DefaultMaxRetries {
		t.Errorf("API.MaxRetries = %d, want %d", cfg.API.MaxRetries, DefaultMaxRetries)
	}
	if cfg.API.QuoteCurrency != DefaultQuoteCurrency {
		t.Errorf("API.QuoteCurrency = %q, want %q", cfg.API.QuoteCurrency, DefaultQuoteCurrency)
	}
	if cfg.Discovery.PageSize != DefaultPageSize {
		t.Errorf("Discovery.PageSize = %d, want %d", cfg.Discovery.PageSize, DefaultPageSize)
	}
	if cfg.Discovery.TargetSymbols != DefaultTargetSymbols {
		t.Errorf("Discovery.TargetSymbols = %d, want %d", cfg.Discovery.TargetSymbols, DefaultTargetSymbols)
	}
	if cfg.Backfill.ChunkDays != DefaultChunkDays {
		t.Errorf("Backfill.ChunkDays = %d, want %d", cfg.Backfill.ChunkDays, DefaultChunkDays)
	}
	if cfg.Backfill.StartDate != DefaultStartDate {
		t.Errorf("Backfill.StartDate = %q, want %q", cfg.Backfill.StartDate, DefaultStartDate)
	}
	if cfg.Pipeline.Concurrency != DefaultConcurrency {
		t.Errorf("Pipeline.Concurrency = %d, want %d", cfg.Pipeline.Concurrency, DefaultConcurrency)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, DefaultDBPort)
	}
}

func TestStartDateTime(t *testing.T) {
	path := writeTempFile(t, validYAML)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	got, err := cfg.StartDateTime()
	if err != nil {
		t.Fatalf("StartDateTime failed: %v", err)
	}
	want := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartDateTime() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "missing db host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name:    "missing db password",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: "database.password",
		},
		{
			name:    "empty api key entry",
			mutate:  func(c *Config) { c.API.APIKeys = []string{"good", ""} },
			wantErr: "api.api_keys[1]",
		},
		{
			name:    "bad start date",
			mutate:  func(c *Config) { c.Backfill.StartDate = "01/01/2010" },
			wantErr: "backfill.start_date",
		},
		{
			name:    "min conns exceed max",
			mutate:  func(c *Config) { c.Database.MinConns = 20 },
			wantErr: "min_conns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, validYAML)
			cfg, err := LoadWithDefaults(path)
			if err != nil {
				t.Fatalf("LoadWithDefaults failed: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

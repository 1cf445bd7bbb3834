package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/config"
	"github.com/dmarkoski/coinsync/internal/database"
	"github.com/dmarkoski/coinsync/internal/discovery"
	"github.com/dmarkoski/coinsync/internal/pipeline"
	"github.com/dmarkoski/coinsync/internal/store"
	"github.com/dmarkoski/coinsync/internal/version"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "coinsync",
	Short: "Crypto OHLCV history and snapshot ingestion pipeline",
	Long: `coinsync discovers the top crypto assets by market cap, backfills their
daily OHLCV history from the upstream market-data API, and captures one
current-state snapshot per asset per UTC day into PostgreSQL.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full ingestion pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.LoadAndValidate(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Info("starting coinsync",
			"version", version.Version,
			"commit", version.Commit,
			"config", configPath,
			"api_url", cfg.API.BaseURL,
			"api_keys", len(cfg.API.APIKeys),
		)

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		logger.Info("database connected",
			"host", cfg.Database.Host,
			"database", cfg.Database.Name,
		)

		client := newClient(cfg, logger)

		p, err := pipeline.New(cfg, client, store.NewPostgresStore(pool, logger), logger)
		if err != nil {
			return err
		}

		summary, err := p.Run(ctx)
		if err != nil {
			return fmt.Errorf("run %s: %w", summary.RunID, err)
		}
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Print candidate symbols without writing anything",
	Long: `Pages through the upstream top-by-market-cap listing and prints the
candidates passing the acceptance filter, in rank order. No liveness probes
are issued and nothing is persisted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.LoadAndValidate(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		disc := discovery.New(discovery.Config{
			PageSize:   cfg.Discovery.PageSize,
			MaxPages:   cfg.Discovery.MaxPages,
			PageDelay:  cfg.Discovery.PageDelay,
			ProbeDelay: cfg.Discovery.ProbeDelay,
		}, newClient(cfg, logger), logger)

		target := cfg.Discovery.TargetSymbols
		candidates, err := disc.DiscoverCandidates(ctx, target+target/2)
		if err != nil {
			return err
		}

		for i, c := range candidates {
			fmt.Printf("%4d  %-10s %s\n", i+1, c.Symbol, c.FullName)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("coinsync " + version.String())
	},
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKeys,
		api.WithQuoteCurrency(cfg.API.QuoteCurrency),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryDelay),
		api.WithLogger(logger),
	)
}

func main() {
	// Optional .env for local development; config expands ${VAR} references.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/coinsync.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd, discoverCmd, versionCmd)

	// RunE errors are logged below; suppress cobra's usage dump on failure.
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

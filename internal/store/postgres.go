package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkoski/coinsync/internal/model"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore creates a store over an existing pool.
func NewPostgresStore(db *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the tables and constraints if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertCoins inserts tracked assets, ignoring existing symbols.
func (s *PostgresStore) UpsertCoins(ctx context.Context, coins []model.Coin) error {
	if len(coins) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range coins {
		batch.Queue(`
			INSERT INTO coins (symbol, full_name)
			VALUES ($1, $2)
			ON CONFLICT (symbol) DO NOTHING
		`, c.Symbol, c.FullName)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range coins {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert coins: %w", err)
		}
	}
	return nil
}

// UpsertDayRecords writes eligible daily candles using a batched upsert.
func (s *PostgresStore) UpsertDayRecords(ctx context.Context, symbol string, records []model.DayRecord, today time.Time) (int, error) {
	batch := &pgx.Batch{}
	queued := 0

	for _, r := range records {
		if !r.Persistable(today) {
			continue
		}
		batch.Queue(`
			INSERT INTO historical_data
				(symbol, date, open, high, low, close, volume_from, volume_to)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (symbol, date) DO UPDATE
			SET open        = EXCLUDED.open,
			    high        = EXCLUDED.high,
			    low         = EXCLUDED.low,
			    close       = EXCLUDED.close,
			    volume_from = EXCLUDED.volume_from,
			    volume_to   = EXCLUDED.volume_to
		`, symbol, r.Date, r.Open, r.High, r.Low, r.Close, r.VolumeFrom, r.VolumeTo)
		queued++
	}

	if queued == 0 {
		return 0, nil
	}

	start := time.Now()
	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < queued; i++ {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("upsert historical days %s: %w", symbol, err)
		}
	}

	s.logger.Debug("flushed historical days",
		"symbol", symbol,
		"rows", queued,
		"duration", time.Since(start),
	)
	return queued, nil
}

// UpsertSnapshot writes one snapshot row, refreshing values on conflict.
func (s *PostgresStore) UpsertSnapshot(ctx context.Context, snap model.Snapshot) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO snapshots
			(symbol, date, last_price, open_24h, high_24h, low_24h,
			 volume_24h, volume_24h_to, change_pct_24h, market_cap, supply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (symbol, date) DO UPDATE
		SET last_price     = EXCLUDED.last_price,
		    open_24h       = EXCLUDED.open_24h,
		    high_24h       = EXCLUDED.high_24h,
		    low_24h        = EXCLUDED.low_24h,
		    volume_24h     = EXCLUDED.volume_24h,
		    volume_24h_to  = EXCLUDED.volume_24h_to,
		    change_pct_24h = EXCLUDED.change_pct_24h,
		    market_cap     = EXCLUDED.market_cap,
		    supply         = EXCLUDED.supply
	`, snap.Symbol, snap.Date, snap.LastPrice, snap.Open24h, snap.High24h, snap.Low24h,
		snap.Volume24h, snap.Volume24hTo, snap.ChangePct24h, snap.MarketCap, snap.Supply)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", snap.Symbol, err)
	}
	return nil
}

// LatestHistoricalDate returns the most recent stored candle date for symbol.
func (s *PostgresStore) LatestHistoricalDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	var date time.Time
	err := s.db.QueryRow(ctx, `
		SELECT date
		FROM historical_data
		WHERE symbol = $1
		ORDER BY date DESC
		LIMIT 1
	`, symbol).Scan(&date)
	if err == pgx.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest historical date %s: %w", symbol, err)
	}
	return model.DateUTC(date), true, nil
}

// SnapshotExists reports whether a snapshot row exists for (symbol, date).
func (s *PostgresStore) SnapshotExists(ctx context.Context, symbol string, date time.Time) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `
		SELECT 1
		FROM snapshots
		WHERE symbol = $1 AND date = $2
		LIMIT 1
	`, symbol, date).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot exists %s: %w", symbol, err)
	}
	return true, nil
}

// ListTrackedSymbols returns all tracked symbols in lexical order.
func (s *PostgresStore) ListTrackedSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT symbol
		FROM coins
		ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("list tracked symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tracked symbols: %w", err)
	}
	return symbols, nil
}

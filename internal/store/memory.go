package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
)

// MemoryStore is an in-memory Store used by tests and dry runs. It enforces
// the same (symbol, date) uniqueness and persist-eligibility rules as the
// Postgres store.
type MemoryStore struct {
	mu        sync.RWMutex
	coins     map[string]model.Coin
	history   map[string]map[string]model.DayRecord // symbol -> ISO date -> record
	snapshots map[string]map[string]model.Snapshot  // symbol -> ISO date -> snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		coins:     make(map[string]model.Coin),
		history:   make(map[string]map[string]model.DayRecord),
		snapshots: make(map[string]map[string]model.Snapshot),
	}
}

func isoDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// EnsureSchema is a no-op for the in-memory store.
func (s *MemoryStore) EnsureSchema(ctx context.Context) error {
	return nil
}

// UpsertCoins inserts tracked assets, ignoring existing symbols.
func (s *MemoryStore) UpsertCoins(ctx context.Context, coins []model.Coin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range coins {
		if _, ok := s.coins[c.Symbol]; !ok {
			s.coins[c.Symbol] = c
		}
	}
	return nil
}

// UpsertDayRecords writes eligible daily candles, refreshing on conflict.
func (s *MemoryStore) UpsertDayRecords(ctx context.Context, symbol string, records []model.DayRecord, today time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.history[symbol]
	if !ok {
		days = make(map[string]model.DayRecord)
		s.history[symbol] = days
	}

	written := 0
	for _, r := range records {
		if !r.Persistable(today) {
			continue
		}
		days[isoDay(r.Date)] = r
		written++
	}
	return written, nil
}

// UpsertSnapshot writes one snapshot row, refreshing on conflict.
func (s *MemoryStore) UpsertSnapshot(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.snapshots[snap.Symbol]
	if !ok {
		days = make(map[string]model.Snapshot)
		s.snapshots[snap.Symbol] = days
	}
	days[isoDay(snap.Date)] = snap
	return nil
}

// LatestHistoricalDate returns the most recent stored candle date for symbol.
func (s *MemoryStore) LatestHistoricalDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := s.history[symbol]
	if len(days) == 0 {
		return time.Time{}, false, nil
	}

	latest := ""
	for day := range days {
		if day > latest {
			latest = day
		}
	}
	date, err := time.ParseInLocation("2006-01-02", latest, time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	return date, true, nil
}

// SnapshotExists reports whether a snapshot row exists for (symbol, date).
func (s *MemoryStore) SnapshotExists(ctx context.Context, symbol string, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.snapshots[symbol][isoDay(date)]
	return ok, nil
}

// ListTrackedSymbols returns all tracked symbols in lexical order.
func (s *MemoryStore) ListTrackedSymbols(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.coins))
	for sym := range s.coins {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// HistoryCount returns the number of stored candles for symbol.
func (s *MemoryStore) HistoryCount(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[symbol])
}

// SnapshotCount returns the number of stored snapshots for symbol.
func (s *MemoryStore) SnapshotCount(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots[symbol])
}

// Coin returns the stored coin row for symbol, if present.
func (s *MemoryStore) Coin(symbol string) (model.Coin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coins[symbol]
	return c, ok
}

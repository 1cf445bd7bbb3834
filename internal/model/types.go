package model

import "time"

// HistoryCutoff is the oldest calendar day the pipeline will persist.
// Daily candles before this date are discarded at write time.
var HistoryCutoff = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// Coin is a tracked asset. Created once during discovery, read-only afterwards.
type Coin struct {
	Symbol   string // Primary key, uppercase alphanumeric (e.g. "BTC")
	FullName string // Display name (e.g. "Bitcoin (BTC)")
}

// DayRecord is one daily OHLCV candle for a symbol.
// Unique per (Symbol, Date); refreshed in place on conflict.
type DayRecord struct {
	Symbol     string
	Date       time.Time // UTC midnight
	Open       float64
	High       float64
	Low        float64
	Close      float64
	VolumeFrom float64
	VolumeTo   float64
}

// Snapshot is a single current-state quote, at most one per symbol per day.
type Snapshot struct {
	Symbol       string
	Date         time.Time // UTC midnight
	LastPrice    float64
	Open24h      float64
	High24h      float64
	Low24h       float64
	Volume24h    float64
	Volume24hTo  float64
	ChangePct24h float64
	MarketCap    float64
	Supply       float64
}

// Gap is the missing date interval for a symbol, both ends inclusive.
// It is derived from the store on every run and never persisted.
type Gap struct {
	Start time.Time // UTC midnight
	End   time.Time // UTC midnight
}

// Days returns the number of calendar days the gap covers.
func (g Gap) Days() int {
	return int(g.End.Sub(g.Start).Hours()/24) + 1
}

// HasZeroPrices reports whether all four price fields are zero/missing.
// Such rows are upstream padding for days the asset did not trade.
func (r DayRecord) HasZeroPrices() bool {
	return r.Open == 0 && r.High == 0 && r.Low == 0 && r.Close == 0
}

// Persistable reports whether the record may be written as final history.
// Today's candle is still forming upstream and is never persisted.
func (r DayRecord) Persistable(today time.Time) bool {
	if r.HasZeroPrices() {
		return false
	}
	if r.Date.Before(HistoryCutoff) {
		return false
	}
	return !r.Date.Equal(today)
}

// DateUTC truncates t to UTC midnight.
func DateUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return DateUTC(time.Now())
}

// Yesterday returns the UTC calendar day before t.
func Yesterday(t time.Time) time.Time {
	return DateUTC(t).AddDate(0, 0, -1)
}

package backfill

import (
	"context"
	"testing"
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
	"github.com/dmarkoski/coinsync/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedHistory(t *testing.T, s store.Store, symbol string, upTo time.Time, days int) {
	t.Helper()
	records := make([]model.DayRecord, days)
	for i := 0; i < days; i++ {
		records[i] = model.DayRecord{
			Symbol: symbol,
			Date:   upTo.AddDate(0, 0, -i),
			Open:   1, High: 1, Low: 1, Close: 1,
		}
	}
	// today far in the future so seeding is never filtered
	if _, err := s.UpsertDayRecords(context.Background(), symbol, records, upTo.AddDate(1, 0, 0)); err != nil {
		t.Fatalf("seed history: %v", err)
	}
}

func TestComputeGap(t *testing.T) {
	ctx := context.Background()
	startDate := day(2020, time.January, 1)
	yesterday := day(2024, time.June, 14)

	t.Run("no history means full backfill", func(t *testing.T) {
		d := NewDetector(store.NewMemoryStore(), startDate)

		gap, ok, err := d.ComputeGap(ctx, "BTC", yesterday)
		if err != nil {
			t.Fatalf("ComputeGap failed: %v", err)
		}
		if !ok {
			t.Fatal("expected a gap")
		}
		if !gap.Start.Equal(startDate) || !gap.End.Equal(yesterday) {
			t.Errorf("gap = [%v, %v], want [%v, %v]", gap.Start, gap.End, startDate, yesterday)
		}
	})

	t.Run("up to date means no gap", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedHistory(t, s, "BTC", yesterday, 3)
		d := NewDetector(s, startDate)

		_, ok, err := d.ComputeGap(ctx, "BTC", yesterday)
		if err != nil {
			t.Fatalf("ComputeGap failed: %v", err)
		}
		if ok {
			t.Error("expected no gap when latest stored date is yesterday")
		}
	})

	t.Run("partial gap from day after last stored", func(t *testing.T) {
		s := store.NewMemoryStore()
		last := day(2024, time.June, 10)
		seedHistory(t, s, "BTC", last, 3)
		d := NewDetector(s, startDate)

		gap, ok, err := d.ComputeGap(ctx, "BTC", yesterday)
		if err != nil {
			t.Fatalf("ComputeGap failed: %v", err)
		}
		if !ok {
			t.Fatal("expected a gap")
		}
		wantStart := day(2024, time.June, 11)
		if !gap.Start.Equal(wantStart) || !gap.End.Equal(yesterday) {
			t.Errorf("gap = [%v, %v], want [%v, %v]", gap.Start, gap.End, wantStart, yesterday)
		}
		if gap.Days() != 4 {
			t.Errorf("gap.Days() = %d, want 4", gap.Days())
		}
	})

	t.Run("stored beyond yesterday means no gap", func(t *testing.T) {
		s := store.NewMemoryStore()
		seedHistory(t, s, "BTC", yesterday.AddDate(0, 0, 1), 1)
		d := NewDetector(s, startDate)

		_, ok, err := d.ComputeGap(ctx, "BTC", yesterday)
		if err != nil {
			t.Fatalf("ComputeGap failed: %v", err)
		}
		if ok {
			t.Error("expected no gap when stored data is ahead of yesterday")
		}
	})
}

package snapshot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/store"
)

func quoteHandler(calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		sym := r.URL.Query().Get("fsyms")
		fmt.Fprintf(w, `{
			"RAW": {
				"%s": {
					"USD": {
						"PRICE": 42000.5,
						"OPEN24HOUR": 41000,
						"HIGH24HOUR": 42500,
						"LOW24HOUR": 40800,
						"VOLUME24HOUR": 1234.5,
						"VOLUME24HOURTO": 51234567,
						"CHANGEPCT24HOUR": 2.44,
						"MKTCAP": 820000000000,
						"SUPPLY": 19600000
					}
				}
			}
		}`, sym)
	}
}

func newCapturer(url string, st store.Store) *Capturer {
	client := api.NewClient(url, nil, api.WithRetries(1, time.Millisecond))
	return NewCapturer(client, st, nil)
}

func TestCaptureOncePerDay(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(quoteHandler(&calls))
	defer srv.Close()

	st := store.NewMemoryStore()
	c := newCapturer(srv.URL, st)
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	wrote, err := c.Capture(context.Background(), "BTC", today)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if !wrote {
		t.Error("first Capture should write a row")
	}

	// Second capture the same day must not even hit the upstream.
	wrote, err = c.Capture(context.Background(), "BTC", today)
	if err != nil {
		t.Fatalf("second Capture failed: %v", err)
	}
	if wrote {
		t.Error("second Capture should be a no-op")
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1", calls.Load())
	}
	if got := st.SnapshotCount("BTC"); got != 1 {
		t.Errorf("SnapshotCount = %d, want 1", got)
	}
}

func TestCaptureMalformedQuoteIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "Error", "Message": "market does not exist"}`))
	}))
	defer srv.Close()

	st := store.NewMemoryStore()
	c := newCapturer(srv.URL, st)
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	wrote, err := c.Capture(context.Background(), "NOPE", today)
	if err != nil {
		t.Fatalf("Capture should swallow a missing quote, got: %v", err)
	}
	if wrote {
		t.Error("no row should be written for a malformed quote")
	}
	if got := st.SnapshotCount("NOPE"); got != 0 {
		t.Errorf("SnapshotCount = %d, want 0 (retried next run)", got)
	}
}

func TestCaptureStoresQuoteFields(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(quoteHandler(&calls))
	defer srv.Close()

	st := store.NewMemoryStore()
	c := newCapturer(srv.URL, st)
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	if _, err := c.Capture(context.Background(), "ETH", today); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	exists, err := st.SnapshotExists(context.Background(), "ETH", today)
	if err != nil || !exists {
		t.Errorf("SnapshotExists = (%v, %v), want (true, nil)", exists, err)
	}
}

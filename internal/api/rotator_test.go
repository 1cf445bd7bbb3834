package api

import (
	"sync"
	"testing"
)

func TestKeyRotator(t *testing.T) {
	t.Run("round robin with wrap", func(t *testing.T) {
		r := NewKeyRotator([]string{"a", "b", "c"})

		want := []string{"a", "b", "c", "a", "b"}
		for i, w := range want {
			if got := r.Next(); got != w {
				t.Errorf("Next() call %d = %q, want %q", i, got, w)
			}
		}
	})

	t.Run("empty pool yields empty keys", func(t *testing.T) {
		r := NewKeyRotator(nil)
		for i := 0; i < 3; i++ {
			if got := r.Next(); got != "" {
				t.Errorf("Next() = %q, want empty", got)
			}
		}
	})

	t.Run("single key is stable", func(t *testing.T) {
		r := NewKeyRotator([]string{"only"})
		for i := 0; i < 3; i++ {
			if got := r.Next(); got != "only" {
				t.Errorf("Next() = %q, want %q", got, "only")
			}
		}
	})

	t.Run("concurrent use hands out fair shares", func(t *testing.T) {
		r := NewKeyRotator([]string{"a", "b"})

		const calls = 100
		counts := make(map[string]int)
		var mu sync.Mutex
		var wg sync.WaitGroup

		for i := 0; i < calls; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := r.Next()
				mu.Lock()
				counts[key]++
				mu.Unlock()
			}()
		}
		wg.Wait()

		if counts["a"] != calls/2 || counts["b"] != calls/2 {
			t.Errorf("counts = %v, want %d each", counts, calls/2)
		}
	})
}

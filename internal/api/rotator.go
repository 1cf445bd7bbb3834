package api

import "sync"

// KeyRotator hands out API keys round-robin. The index advances exactly once
// per call, wrapping, regardless of whether the request that uses the key
// succeeds. Safe for concurrent use; a single rotator is shared process-wide
// so rotation stays globally fair across symbols.
type KeyRotator struct {
	mu   sync.Mutex
	keys []string
	idx  int
}

// NewKeyRotator creates a rotator over a fixed, ordered key list.
// An empty list is valid and yields empty keys (unauthenticated requests).
func NewKeyRotator(keys []string) *KeyRotator {
	return &KeyRotator{keys: keys}
}

// Next returns the next key in rotation, or "" when no keys are configured.
func (r *KeyRotator) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return ""
	}
	key := r.keys[r.idx]
	r.idx = (r.idx + 1) % len(r.keys)
	return key
}

// Size returns the number of configured keys.
func (r *KeyRotator) Size() int {
	return len(r.keys)
}

package utils

import (
	"context"
	"time"
)

// StartMemorySweeper launches a background goroutine that periodically drops expired entries
// from the in-process fallbacks used when Redis is off or failing: revoked tokens, OAuth states
// and registration counters. It stops when ctx is done.
func StartMemorySweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				if n := sweepMemory(now); n > 0 {
					Sugar.Debugw("swept expired in-memory entries", "count", n)
				}
			}
		}
	}()
}

func sweepMemory(now time.Time) int {
	n := 0

	blacklistMu.Lock()
	for k, exp := range blacklist {
		if now.After(exp) {
			delete(blacklist, k)
			n++
		}
	}
	blacklistMu.Unlock()

	stateStoreMu.Lock()
	for k, exp := range stateStore {
		if now.After(exp) {
			delete(stateStore, k)
			n++
		}
	}
	stateStoreMu.Unlock()

	return n + sweepRegistrationCounters(now)
}

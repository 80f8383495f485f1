package services

import (
	"context"
	"sync"
)

// LatestOnly keeps at most one live run per key. Starting a run cancels the
// context of any run already in flight for the same key.
type LatestOnly struct {
	mu       sync.Mutex
	gen      uint64
	inflight map[string]latestRun
}

type latestRun struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewLatestOnly() *LatestOnly {
	return &LatestOnly{inflight: make(map[string]latestRun)}
}

// Start derives a context for a new run of key. The returned func must be
// called when the run is over.
func (l *LatestOnly) Start(ctx context.Context, key string) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.inflight == nil {
		l.inflight = make(map[string]latestRun)
	}
	if prev, ok := l.inflight[key]; ok {
		prev.cancel()
	}
	l.gen++
	gen := l.gen
	l.inflight[key] = latestRun{gen: gen, cancel: cancel}
	l.mu.Unlock()

	return runCtx, func() {
		l.mu.Lock()
		if cur, ok := l.inflight[key]; ok && cur.gen == gen {
			delete(l.inflight, key)
		}
		l.mu.Unlock()
		cancel()
	}
}

// InFlight reports how many keys have a live run.
func (l *LatestOnly) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}

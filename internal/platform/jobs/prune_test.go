package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePruner struct {
	olderThan time.Time
	n         int64
	err       error
}

func (f *fakePruner) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	f.olderThan = olderThan
	return f.n, f.err
}

func TestCachePrunerRun(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	fp := &fakePruner{n: 4}
	p := &CachePruner{Pruner: fp, TTL: 48 * time.Hour, Now: func() time.Time { return now }}

	n, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 4 {
		t.Fatalf("removed = %d, want 4", n)
	}
	if want := now.Add(-48 * time.Hour); !fp.olderThan.Equal(want) {
		t.Fatalf("olderThan = %v, want %v", fp.olderThan, want)
	}
}

func TestCachePrunerRunError(t *testing.T) {
	boom := errors.New("boom")
	p := &CachePruner{Pruner: &fakePruner{err: boom}, TTL: time.Hour}

	if _, err := p.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestSchedule(t *testing.T) {
	p := &CachePruner{Pruner: &fakePruner{}, TTL: time.Hour}

	c, err := Schedule("0 3 * * *", p)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(c.Entries()))
	}

	if _, err := Schedule("every day", p); err == nil {
		t.Fatalf("Schedule with bad spec: err = nil, want error")
	}
}

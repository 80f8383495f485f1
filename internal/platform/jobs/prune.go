package jobs

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CachePruner deletes cached travel and geocode rows older than TTL.
type CachePruner struct {
	Pruner  ports.Pruner
	TTL     time.Duration
	Timeout time.Duration
	Now     func() time.Time
}

// Run prunes once and reports how many rows were removed.
func (p *CachePruner) Run(ctx context.Context) (n int64, err error) {
	defer obs.Time(ctx, "cache.prune")(&err)

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	n, err = p.Pruner.Prune(ctx, now().Add(-p.TTL))
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return n, nil
}

// Schedule registers the pruner on a cron scheduler. The caller starts and stops it.
func Schedule(spec string, p *CachePruner) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		n, err := p.Run(context.Background())
		if err != nil {
			log.Printf("cache prune failed: err=%v", err)
			return
		}
		log.Printf("cache prune done: removed=%d", n)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache prune %q: %w", spec, err)
	}

	return c, nil
}

package storage

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edutor/internal/logging"
)

// RunJanitor sweeps expired keys every interval until ctx is done.
func RunJanitor(ctx context.Context, p Purger, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				logger.Error(ctx, "purge expired keys failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug(ctx, "purged expired keys", "count", n)
			}
		}
	}
}

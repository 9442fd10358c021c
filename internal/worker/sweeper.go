package worker

import (
	"context"
	"log"
	"time"

	"decision-engine/internal/domain/decision"
	"decision-engine/internal/retry"
)

// Sweeper periodically closes open decisions whose voting window has passed.
// The underlying transition is a compare-and-swap, so racing an explicit
// close or a second sweep is harmless.
type Sweeper struct {
	svc      *decision.Service
	interval time.Duration
}

func NewSweeper(svc *decision.Service, interval time.Duration) *Sweeper {
	return &Sweeper{svc: svc, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context) {
	log.Println("close sweeper started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("close sweeper stopped")
			return
		case <-ticker.C:
			var closed int
			err := retry.DoWithRetry(ctx, 3, time.Second, func() error {
				var err error
				closed, err = s.svc.CloseExpired(ctx)
				return err
			})
			if err != nil {
				log.Printf("sweep error: %v", err)
				continue
			}
			if closed > 0 {
				log.Printf("sweep closed %d expired decisions", closed)
			}
		}
	}
}

package worker

import (
	"context"
	"log"

	"decision-engine/internal/metrics"
)

type BallotEvent struct {
	DecisionID   int64
	VotingMethod string
}

// BallotEventWorker drains accepted-ballot events and feeds the metrics
// counters, keeping metric updates off the request path.
type BallotEventWorker struct {
	Ch <-chan BallotEvent
}

func NewBallotEventWorker(ch <-chan BallotEvent) *BallotEventWorker {
	return &BallotEventWorker{Ch: ch}
}

func (w *BallotEventWorker) Run(ctx context.Context) {
	log.Println("ballot event worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("ballot event worker stopped")
			return
		case ev := <-w.Ch:
			metrics.IncBallot(ev.VotingMethod)
			log.Printf("ballot accepted: decision=%d method=%s", ev.DecisionID, ev.VotingMethod)
		}
	}
}

package ballot

import (
	"context"
	"errors"
	"time"
)

var ErrAlreadyVoted = errors.New("voter already has a ballot for this decision")

type Method string

const (
	MethodPlurality Method = "plurality"
	MethodScored    Method = "scored"
	MethodRanked    Method = "ranked"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodPlurality, MethodScored, MethodRanked:
		return Method(s), true
	}
	return "", false
}

// Ballot is one voter's submission for one decision. (DecisionID, VoterID) is
// unique; ballots are append-only and never mutated after creation.
type Ballot struct {
	ID         int64     `json:"id"`
	DecisionID int64     `json:"decision_id"`
	VoterID    int64     `json:"voter_id"`
	Payload    Payload   `json:"payload"`
	CastAt     time.Time `json:"cast_at"`
}

type Repository interface {
	// Append stores a ballot. The uniqueness check and insert are a single
	// atomic operation; a second ballot from the same voter for the same
	// decision fails with ErrAlreadyVoted.
	Append(ctx context.Context, b *Ballot) error
	// ListByDecision returns a consistent snapshot of all ballots for a
	// decision, payloads decoded for the given method.
	ListByDecision(ctx context.Context, decisionID int64, m Method) ([]Ballot, error)
	CountByDecision(ctx context.Context, decisionID int64) (int64, error)
}

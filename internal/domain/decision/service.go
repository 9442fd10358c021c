package decision

import (
	"context"
	"sync"
	"time"

	"decision-engine/internal/authz"
	"decision-engine/internal/domain/ballot"
	"decision-engine/internal/tally"
)

// Caller is the authenticated requester. The role is always passed
// explicitly; nothing is inferred from ambient state.
type Caller struct {
	ID   int64
	Role authz.Role
}

type Service struct {
	policy    *authz.Policy
	decisions Repository
	ballots   ballot.Repository
	now       func() time.Time

	// Results of closed decisions never change: ballots are append-only and
	// a closed decision accepts no more of them.
	mu           sync.Mutex
	finalResults map[int64]*tally.Result
}

func NewService(policy *authz.Policy, decisions Repository, ballots ballot.Repository) *Service {
	return &Service{
		policy:       policy,
		decisions:    decisions,
		ballots:      ballots,
		now:          time.Now,
		finalResults: make(map[int64]*tally.Result),
	}
}

type CreateInput struct {
	Scope            Scope
	Level            authz.Level
	VotingMethod     ballot.Method
	Options          []Option
	MaxSelections    int
	ResultVisibility Visibility
	PreviewAt        *time.Time
	OpensAt          time.Time
	ClosesAt         time.Time
}

func (s *Service) Create(ctx context.Context, caller Caller, in CreateInput) (*Decision, error) {
	if !s.policy.Allowed(caller.Role, in.Level, authz.ActionCreate) {
		return nil, ErrPermissionDenied
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	d := &Decision{
		Scope:            in.Scope,
		Level:            in.Level,
		VotingMethod:     in.VotingMethod,
		Options:          in.Options,
		MaxSelections:    in.MaxSelections,
		Status:           StatusDraft,
		ResultVisibility: in.ResultVisibility,
		PreviewAt:        in.PreviewAt,
		CreatedBy:        caller.ID,
		OpensAt:          in.OpensAt,
		ClosesAt:         in.ClosesAt,
	}
	if _, err := s.decisions.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func validateCreate(in CreateInput) error {
	if _, ok := authz.ParseLevel(string(in.Level)); !ok {
		return &ballot.ValidationError{Field: "level", Reason: "unknown level"}
	}
	if _, ok := ballot.ParseMethod(string(in.VotingMethod)); !ok {
		return &ballot.ValidationError{Field: "voting_method", Reason: "unknown voting method"}
	}
	if _, ok := ParseVisibility(string(in.ResultVisibility)); !ok {
		return &ballot.ValidationError{Field: "result_visibility", Reason: "unknown visibility"}
	}
	if len(in.Options) < 2 {
		return &ballot.ValidationError{Field: "options", Reason: "at least 2 options are required"}
	}
	seen := make(map[string]bool, len(in.Options))
	for _, opt := range in.Options {
		if opt.ID == "" || opt.Label == "" {
			return &ballot.ValidationError{Field: "options", Reason: "option id and label are required"}
		}
		if seen[opt.ID] {
			return &ballot.ValidationError{Field: "options", Reason: "duplicate option id " + opt.ID}
		}
		seen[opt.ID] = true
	}
	if !in.ClosesAt.After(in.OpensAt) {
		return &ballot.ValidationError{Field: "closes_at", Reason: "closes_at must be after opens_at"}
	}
	if in.MaxSelections < 0 {
		return &ballot.ValidationError{Field: "max_selections", Reason: "max_selections must not be negative"}
	}
	if in.VotingMethod == ballot.MethodRanked && in.MaxSelections == 1 {
		return &ballot.ValidationError{Field: "max_selections", Reason: "ranked decisions need at least 2 selections"}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Decision, error) {
	return s.decisions.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status *Status) ([]Decision, error) {
	return s.decisions.List(ctx, status)
}

// Open transitions a draft decision to open. Only the creator or an admin may
// open it, and not before its opens_at time.
func (s *Service) Open(ctx context.Context, caller Caller, id int64) error {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canManage(caller, d) {
		return ErrPermissionDenied
	}
	if s.now().Before(d.OpensAt) {
		return ErrInvalidTransition
	}
	return s.decisions.UpdateStatus(ctx, id, StatusDraft, StatusOpen)
}

// Close transitions an open decision to closed. The compare-and-swap in the
// repository makes concurrent close requests settle on a single transition.
func (s *Service) Close(ctx context.Context, caller Caller, id int64) error {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canManage(caller, d) {
		return ErrPermissionDenied
	}
	return s.decisions.UpdateStatus(ctx, id, StatusOpen, StatusClosed)
}

func (s *Service) Archive(ctx context.Context, caller Caller, id int64) error {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canManage(caller, d) {
		return ErrPermissionDenied
	}
	return s.decisions.UpdateStatus(ctx, id, StatusClosed, StatusArchived)
}

// CloseExpired closes every open decision whose voting window has passed.
// Losing the CAS race to an explicit close is fine; the sweep is idempotent.
func (s *Service) CloseExpired(ctx context.Context) (int, error) {
	ids, err := s.decisions.ListExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, id := range ids {
		err := s.decisions.UpdateStatus(ctx, id, StatusOpen, StatusClosed)
		switch err {
		case nil:
			closed++
		case ErrInvalidTransition, ErrNotFound:
		default:
			return closed, err
		}
	}
	return closed, nil
}

// CastBallot records the caller's ballot for a decision. The store's
// uniqueness constraint keeps the check-and-insert atomic under concurrent
// submissions from the same voter.
func (s *Service) CastBallot(ctx context.Context, caller Caller, decisionID int64, p ballot.Payload) error {
	d, err := s.decisions.GetByID(ctx, decisionID)
	if err != nil {
		return err
	}
	if !s.policy.Allowed(caller.Role, d.Level, authz.ActionVote) {
		return ErrPermissionDenied
	}

	now := s.now()
	if d.Status != StatusOpen || now.Before(d.OpensAt) || !now.Before(d.ClosesAt) {
		return ErrClosed
	}

	if err := ballot.Validate(p, d.VotingMethod, d.OptionIDs(), d.MaxSelections); err != nil {
		return err
	}

	return s.ballots.Append(ctx, &ballot.Ballot{
		DecisionID: decisionID,
		VoterID:    caller.ID,
		Payload:    p,
		CastAt:     now,
	})
}

// Results tallies a decision's ballots if its visibility rules permit.
func (s *Service) Results(ctx context.Context, caller Caller, id int64) (*tally.Result, error) {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.Allowed(caller.Role, d.Level, authz.ActionViewResults) {
		return nil, ErrPermissionDenied
	}

	final := false
	switch d.Status {
	case StatusClosed, StatusArchived:
		final = true
	case StatusOpen:
		switch d.ResultVisibility {
		case VisibilityRealtime:
		case VisibilityBeforeClose:
			if d.PreviewAt != nil && s.now().Before(*d.PreviewAt) {
				return nil, ErrResultsNotAvailable
			}
		default:
			return nil, ErrResultsNotAvailable
		}
	default:
		return nil, ErrResultsNotAvailable
	}

	if final {
		s.mu.Lock()
		cached := s.finalResults[id]
		s.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
	}

	ballots, err := s.ballots.ListByDecision(ctx, id, d.VotingMethod)
	if err != nil {
		return nil, err
	}
	res := computeTally(d, ballots)

	if final {
		s.mu.Lock()
		s.finalResults[id] = res
		s.mu.Unlock()
	}
	return res, nil
}

func (s *Service) canManage(caller Caller, d *Decision) bool {
	return caller.Role == authz.RoleAdmin || caller.ID == d.CreatedBy
}

func computeTally(d *Decision, ballots []ballot.Ballot) *tally.Result {
	opts := make([]tally.Option, len(d.Options))
	for i, opt := range d.Options {
		opts[i] = tally.Option{ID: opt.ID, Label: opt.Label}
	}

	switch d.VotingMethod {
	case ballot.MethodPlurality:
		picks := make([]string, 0, len(ballots))
		for _, b := range ballots {
			if p, ok := b.Payload.(ballot.PluralityPayload); ok {
				picks = append(picks, p.OptionID)
			}
		}
		res := tally.Plurality(opts, picks)
		return &res
	case ballot.MethodScored:
		scores := make([]map[string]int, 0, len(ballots))
		for _, b := range ballots {
			if p, ok := b.Payload.(ballot.ScoredPayload); ok {
				scores = append(scores, p.Scores)
			}
		}
		res := tally.Scored(opts, scores)
		return &res
	default:
		rankings := make([][]string, 0, len(ballots))
		for _, b := range ballots {
			if p, ok := b.Payload.(ballot.RankedPayload); ok {
				rankings = append(rankings, p.Ranking)
			}
		}
		res := tally.Ranked(opts, rankings)
		return &res
	}
}

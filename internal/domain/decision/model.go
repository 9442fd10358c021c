package decision

import (
	"context"
	"errors"
	"time"

	"decision-engine/internal/authz"
	"decision-engine/internal/domain/ballot"
)

var (
	ErrNotFound            = errors.New("decision not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrClosed              = errors.New("decision is not open for voting")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrResultsNotAvailable = errors.New("results not available")
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusOpen     Status = "open"
	StatusClosed   Status = "closed"
	StatusArchived Status = "archived"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusDraft, StatusOpen, StatusClosed, StatusArchived:
		return Status(s), true
	}
	return "", false
}

type Visibility string

const (
	VisibilityRealtime    Visibility = "realtime"
	VisibilityBeforeClose Visibility = "before_close"
	VisibilityClosedOnly  Visibility = "closed_only"
)

func ParseVisibility(s string) (Visibility, bool) {
	switch Visibility(s) {
	case VisibilityRealtime, VisibilityBeforeClose, VisibilityClosedOnly:
		return Visibility(s), true
	}
	return "", false
}

// Scope points at the thing the decision belongs to (a classroom, an
// institution). Opaque here.
type Scope struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Decision is a proposal or poll subject to voting. Options are immutable
// once any ballot exists.
type Decision struct {
	ID               int64         `json:"id"`
	Scope            Scope         `json:"scope"`
	Level            authz.Level   `json:"level"`
	VotingMethod     ballot.Method `json:"voting_method"`
	Options          []Option      `json:"options"`
	MaxSelections    int           `json:"max_selections,omitempty"`
	Status           Status        `json:"status"`
	ResultVisibility Visibility    `json:"result_visibility"`
	PreviewAt        *time.Time    `json:"preview_at,omitempty"`
	CreatedBy        int64         `json:"created_by"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	OpensAt          time.Time     `json:"opens_at"`
	ClosesAt         time.Time     `json:"closes_at"`
}

// OptionIDs returns the option ids in declaration order.
func (d *Decision) OptionIDs() []string {
	ids := make([]string, len(d.Options))
	for i, opt := range d.Options {
		ids[i] = opt.ID
	}
	return ids
}

type Repository interface {
	Create(ctx context.Context, d *Decision) (int64, error)
	GetByID(ctx context.Context, id int64) (*Decision, error)
	List(ctx context.Context, status *Status) ([]Decision, error)
	// UpdateStatus transitions a decision from one status to another with
	// compare-and-swap semantics: it fails with ErrInvalidTransition if the
	// current status is not from, and ErrNotFound for an unknown id.
	UpdateStatus(ctx context.Context, id int64, from, to Status) error
	// ListExpired returns ids of open decisions whose closing time has
	// passed.
	ListExpired(ctx context.Context, now time.Time) ([]int64, error)
}

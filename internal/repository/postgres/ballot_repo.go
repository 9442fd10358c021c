package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"decision-engine/internal/domain/ballot"
)

type BallotRepo struct {
	db *sql.DB
}

func NewBallotRepo(db *sql.DB) *BallotRepo {
	return &BallotRepo{db: db}
}

// Append inserts a ballot. The unique index on (decision_id, voter_id) makes
// the existence check and insert one atomic operation; concurrent duplicate
// submissions from the same voter collapse to a single stored ballot.
func (r *BallotRepo) Append(ctx context.Context, b *ballot.Ballot) error {
	payload, err := ballot.EncodePayload(b.Payload)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO ballots (decision_id, voter_id, payload, cast_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err = r.db.QueryRowContext(ctx, query, b.DecisionID, b.VoterID, payload, b.CastAt).
		Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ballot.ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (r *BallotRepo) ListByDecision(ctx context.Context, decisionID int64, m ballot.Method) ([]ballot.Ballot, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, voter_id, payload, cast_at
        FROM ballots
        WHERE decision_id = $1
        ORDER BY id
    `, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ballot.Ballot
	for rows.Next() {
		b := ballot.Ballot{DecisionID: decisionID}
		var raw []byte
		if err := rows.Scan(&b.ID, &b.VoterID, &raw, &b.CastAt); err != nil {
			return nil, err
		}
		p, err := ballot.DecodePayload(m, raw)
		if err != nil {
			return nil, err
		}
		b.Payload = p
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *BallotRepo) CountByDecision(ctx context.Context, decisionID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ballots WHERE decision_id = $1`, decisionID).Scan(&n)
	return n, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"decision-engine/internal/authz"
	"decision-engine/internal/domain/ballot"
	"decision-engine/internal/domain/decision"
)

type DecisionRepo struct {
	db *sql.DB
}

func NewDecisionRepo(db *sql.DB) *DecisionRepo {
	return &DecisionRepo{db: db}
}

func (r *DecisionRepo) Create(ctx context.Context, d *decision.Decision) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	queryDecision := `
        INSERT INTO decisions
            (target_type, target_id, level, voting_method, max_selections,
             status, result_visibility, preview_at, created_by, opens_at, closes_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at
    `

	err = tx.QueryRowContext(ctx, queryDecision,
		d.Scope.TargetType,
		d.Scope.TargetID,
		d.Level,
		d.VotingMethod,
		d.MaxSelections,
		d.Status,
		d.ResultVisibility,
		d.PreviewAt,
		d.CreatedBy,
		d.OpensAt,
		d.ClosesAt,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return 0, err
	}

	queryOpt := `
        INSERT INTO decision_options (decision_id, option_id, label, position)
        VALUES ($1, $2, $3, $4)
    `
	for i, opt := range d.Options {
		if _, err := tx.ExecContext(ctx, queryOpt, d.ID, opt.ID, opt.Label, i); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (r *DecisionRepo) GetByID(ctx context.Context, id int64) (*decision.Decision, error) {
	d := &decision.Decision{}
	var level, method, status, visibility string
	err := r.db.QueryRowContext(ctx, `
        SELECT id, target_type, target_id, level, voting_method, max_selections,
               status, result_visibility, preview_at, created_by,
               created_at, updated_at, opens_at, closes_at
        FROM decisions WHERE id = $1
    `, id).Scan(
		&d.ID, &d.Scope.TargetType, &d.Scope.TargetID, &level, &method, &d.MaxSelections,
		&status, &visibility, &d.PreviewAt, &d.CreatedBy,
		&d.CreatedAt, &d.UpdatedAt, &d.OpensAt, &d.ClosesAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, decision.ErrNotFound
		}
		return nil, err
	}
	d.Level = authz.Level(level)
	d.VotingMethod = ballot.Method(method)
	d.Status = decision.Status(status)
	d.ResultVisibility = decision.Visibility(visibility)

	rows, err := r.db.QueryContext(ctx, `
        SELECT option_id, label
        FROM decision_options WHERE decision_id = $1
        ORDER BY position
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var opt decision.Option
		if err := rows.Scan(&opt.ID, &opt.Label); err != nil {
			return nil, err
		}
		d.Options = append(d.Options, opt)
	}
	return d, rows.Err()
}

func (r *DecisionRepo) List(ctx context.Context, status *decision.Status) ([]decision.Decision, error) {
	query := `
        SELECT id, target_type, target_id, level, voting_method, max_selections,
               status, result_visibility, preview_at, created_by,
               created_at, updated_at, opens_at, closes_at
        FROM decisions
    `
	var rows *sql.Rows
	var err error

	if status != nil {
		query += " WHERE status = $1 ORDER BY created_at DESC"
		rows, err = r.db.QueryContext(ctx, query, *status)
	} else {
		query += " ORDER BY created_at DESC"
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []decision.Decision
	for rows.Next() {
		var d decision.Decision
		if err := rows.Scan(
			&d.ID, &d.Scope.TargetType, &d.Scope.TargetID, &d.Level, &d.VotingMethod, &d.MaxSelections,
			&d.Status, &d.ResultVisibility, &d.PreviewAt, &d.CreatedBy,
			&d.CreatedAt, &d.UpdatedAt, &d.OpensAt, &d.ClosesAt,
		); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

// UpdateStatus is a compare-and-swap on status: two racing transitions settle
// on one winner, the loser sees ErrInvalidTransition.
func (r *DecisionRepo) UpdateStatus(ctx context.Context, id int64, from, to decision.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE decisions SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM decisions WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return decision.ErrNotFound
	}
	if err != nil {
		return err
	}
	return decision.ErrInvalidTransition
}

func (r *DecisionRepo) ListExpired(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM decisions WHERE status = $1 AND closes_at <= $2`,
		decision.StatusOpen, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

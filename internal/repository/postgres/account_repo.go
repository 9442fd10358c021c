package postgres

import (
	"context"
	"database/sql"

	"decision-engine/internal/domain/identity"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, a *identity.Account) error {
	query := `
        INSERT INTO accounts (email, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query, a.Email, a.PasswordHash, a.Role, a.IsActive).
		Scan(&a.ID, &a.CreatedAt)
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	query := `
        SELECT id, email, password_hash, role, is_active, created_at
        FROM accounts WHERE email = $1
    `
	a := &identity.Account{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*identity.Account, error) {
	query := `
        SELECT id, email, password_hash, role, is_active, created_at
        FROM accounts WHERE id = $1
    `
	a := &identity.Account{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]identity.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, email, password_hash, role, is_active, created_at
        FROM accounts ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []identity.Account
	for rows.Next() {
		var a identity.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AccountRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AccountRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

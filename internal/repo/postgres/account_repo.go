package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

const accountColumns = `id, name, email, password_hash, is_admin, created_at, updated_at`

type AccountRepo struct {
	db DBTX
}

func NewAccountRepo(db DBTX) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, account authsvc.NewAccount) (authsvc.AccountRecord, error) {
	if r.db == nil {
		return authsvc.AccountRecord{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.db.QueryRow(ctx, `
INSERT INTO users (name, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
RETURNING `+accountColumns,
		account.Name, account.Email, account.PasswordHash)

	record, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return authsvc.AccountRecord{}, authsvc.ErrEmailTaken
		}
		return authsvc.AccountRecord{}, fmt.Errorf("insert user: %w", err)
	}
	return record, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (authsvc.AccountRecord, error) {
	if r.db == nil {
		return authsvc.AccountRecord{}, fmt.Errorf("postgres pool is nil")
	}

	record, err := scanAccount(r.db.QueryRow(ctx, `
SELECT `+accountColumns+`
FROM users
WHERE email = $1
`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.AccountRecord{}, authsvc.ErrAccountNotFound
		}
		return authsvc.AccountRecord{}, fmt.Errorf("find user by email: %w", err)
	}
	return record, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (authsvc.AccountRecord, error) {
	if r.db == nil {
		return authsvc.AccountRecord{}, fmt.Errorf("postgres pool is nil")
	}

	record, err := scanAccount(r.db.QueryRow(ctx, `
SELECT `+accountColumns+`
FROM users
WHERE id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.AccountRecord{}, authsvc.ErrAccountNotFound
		}
		return authsvc.AccountRecord{}, fmt.Errorf("find user by id: %w", err)
	}
	return record, nil
}

// SetAdmin is used by operators seeding the first admin account.
func (r *AccountRepo) SetAdmin(ctx context.Context, email string, isAdmin bool) error {
	if r.db == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.db.Exec(ctx, `
UPDATE users
SET is_admin = $2, updated_at = NOW()
WHERE email = $1
`, email, isAdmin)
	if err != nil {
		return fmt.Errorf("update user admin flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authsvc.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (authsvc.AccountRecord, error) {
	var record authsvc.AccountRecord
	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.PasswordHash,
		&record.IsAdmin,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	return record, err
}

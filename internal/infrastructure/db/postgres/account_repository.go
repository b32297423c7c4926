package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// SQLSTATE class for unique constraint violations.
const uniqueViolation = "23505"

const (
	checkUsernameQuery  = `SELECT id FROM users WHERE username = $1`
	checkEmailQuery     = `SELECT id FROM users WHERE email = $1`
	insertUserQuery     = `INSERT INTO users (username, password, email) VALUES ($1, $2, $3)`
	insertUserRoleQuery = `INSERT INTO users (username, password, email, role) VALUES ($1, $2, $3, $4)`
	findByUsernameQuery = `SELECT id, username, email, role, password FROM users WHERE username = $1`
	roleByIDQuery       = `SELECT role FROM users WHERE id = $1`
	updateRoleQuery     = `UPDATE users SET role = $1 WHERE username = $2`
)

// AccountRepository persists accounts in the users table. Username and
// email carry unique constraints; a violated constraint surfaces as
// domain.ErrDuplicateAccount for the service layer to classify.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) (*AccountRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	r := &AccountRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *AccountRepository) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	role TEXT DEFAULT 'user'
)`
	if _, err := r.db.Exec(q); err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, checkUsernameQuery, username)
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, checkEmailQuery, email)
}

func exists(ctx context.Context, q rowQuerier, query, arg string) (bool, error) {
	var id int
	err := q.QueryRowContext(ctx, query, arg).Scan(&id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("existence check: %w", err)
	}
}

// CreateAccount performs check-username, check-email, insert inside a single
// transaction. The checks classify an ordinary collision; a concurrent
// writer between check and insert still trips the unique constraint, which
// comes back as ErrDuplicateAccount for the service to re-classify. An empty
// role relies on the column default so the row never ends up with an
// explicit empty string.
func (r *AccountRepository) CreateAccount(ctx context.Context, username, passwordHash, email, role string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	taken, err := exists(ctx, tx, checkUsernameQuery, username)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateUsername
	}

	taken, err = exists(ctx, tx, checkEmailQuery, email)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateEmail
	}

	if role == "" {
		_, err = tx.ExecContext(ctx, insertUserQuery, username, passwordHash, email)
	} else {
		_, err = tx.ExecContext(ctx, insertUserRoleQuery, username, passwordHash, email, role)
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var acct domain.Account
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, findByUsernameQuery, username).
		Scan(&acct.ID, &acct.Username, &acct.Email, &role, &acct.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	// NULL roles stay empty here; readers normalize, never write back.
	acct.Role = role.String
	return &acct, nil
}

func (r *AccountRepository) RoleByID(ctx context.Context, id int) (string, error) {
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, roleByIDQuery, id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("fetch role: %w", err)
	}
	return role.String, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, username, role string) error {
	if _, err := r.db.ExecContext(ctx, updateRoleQuery, role, username); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

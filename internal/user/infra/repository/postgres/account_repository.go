package postgres

import (
	"context"
	"errors"

	"github.com/dkoroteev/yeticave/internal/shared/db"
	"github.com/dkoroteev/yeticave/internal/user/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// AccountRepository implements domain.AccountRepository over Postgres.
type AccountRepository struct {
	pool db.Querier
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(pool db.Querier) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Register inserts an account and returns the assigned id. A duplicate
// email maps to domain.ErrEmailTaken; anything else propagates as the
// driver diagnostic.
func (r *AccountRepository) Register(ctx context.Context, account domain.NewAccount) (int64, error) {
	query := `
        INSERT INTO account (email, name, password, contacts)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		account.Email,
		account.Name,
		account.Password,
		account.Contacts,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, domain.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// FindByEmail returns the account registered under email, or
// domain.ErrAccountNotFound when no row matches.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
        SELECT id, email, name, password, contacts
        FROM account
        WHERE account.email = $1`
	account := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.Password,
		&account.Contacts,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

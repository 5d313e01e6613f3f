package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/dkoroteev/yeticave/internal/user/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Register(t *testing.T) {
	t.Parallel()

	account := domain.NewAccount{
		Email:    "anna@example.com",
		Name:     "Anna",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Contacts: "+7 900 000-00-00",
	}

	t.Run("returns_assigned_id", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO account")).
			WithArgs(account.Email, account.Name, account.Password, account.Contacts).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		repo := NewAccountRepository(mock)
		id, err := repo.Register(context.Background(), account)
		require.NoError(t, err)
		require.Equal(t, int64(11), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate_email_maps_to_domain_error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO account")).
			WithArgs(account.Email, account.Name, account.Password, account.Contacts).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"})

		repo := NewAccountRepository(mock)
		_, err = repo.Register(context.Background(), account)
		require.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE account.email = $1")).
			WithArgs("anna@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password", "contacts"}).
				AddRow(int64(11), "anna@example.com", "Anna", "$2a$10$hash", "+7 900 000-00-00"))

		repo := NewAccountRepository(mock)
		found, err := repo.FindByEmail(context.Background(), "anna@example.com")
		require.NoError(t, err)
		require.Equal(t, int64(11), found.ID)
		require.Equal(t, "Anna", found.Name)
	})

	t.Run("missing_account_is_explicit_not_found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE account.email = $1")).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := NewAccountRepository(mock)
		found, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
		require.Nil(t, found)
	})
}

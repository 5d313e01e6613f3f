package domain

import (
	"context"
	"errors"
)

// Account is a registered user. Password holds the one-way hash, never
// the plaintext.
type Account struct {
	ID       int64
	Email    string
	Name     string
	Password string
	Contacts string
}

// NewAccount carries the fields for registration. By the time it reaches
// the repository the password is hashed and the free-text fields are
// stripped of markup.
type NewAccount struct {
	Email    string
	Name     string
	Password string
	Contacts string
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email is already registered")
)

// AccountRepository owns account reads and writes. FindByEmail returns
// ErrAccountNotFound for a missing row; Register returns ErrEmailTaken
// on a unique violation of the email column.
type AccountRepository interface {
	Register(ctx context.Context, account NewAccount) (int64, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

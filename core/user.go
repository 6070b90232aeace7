package core

import (
	"context"
	"errors"
	"time"
)

// Account is the stored credential record. PasswordHash never leaves the
// core package; callers only ever see an AccountSummary.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountSummary is the caller-facing view of an account.
type AccountSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user already exists")
)

// UserStore is the durable mapping of email to account record. Emails are
// matched exactly (case-sensitive) and are unique across all accounts; the
// uniqueness guarantee must hold under concurrent inserts.
type UserStore interface {
	// FindByEmail returns ErrUserNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByID returns ErrUserNotFound when no account has the id.
	FindByID(ctx context.Context, id string) (*Account, error)

	// Insert creates an account with a newly assigned id. It returns
	// ErrDuplicateEmail when an account with the email already exists,
	// even when two inserts for the same email race.
	Insert(ctx context.Context, email, name, passwordHash string) (*Account, error)
}

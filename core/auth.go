package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingFields  = errors.New("missing fields")
	ErrBadCredentials = errors.New("invalid credentials")
)

// Session is the result of a successful register or login.
type Session struct {
	Account   AccountSummary
	Token     string
	ExpiresAt time.Time
}

// AuthService composes the credential store, password hasher and token
// issuer. Each call makes at most one store round trip and one hash
// computation; there is no server-side session state.
type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthService) TokenValidity() time.Duration {
	return s.tokens.Validity()
}

// Register creates an account and issues a session token for it. Duplicate
// emails fail with ErrDuplicateEmail; the uniqueness check is delegated to
// the store's constraint so concurrent registrations cannot both succeed.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account, err := s.users.Insert(ctx, email, name, hashed)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("inserting account: %w", err)
	}

	return s.newSession(account)
}

// Login verifies the password for the account registered under email and
// issues a fresh session token. Unknown emails fail with ErrUserNotFound
// and wrong passwords with ErrBadCredentials; callers that do not want to
// leak account existence should present both identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ErrBadCredentials
	}

	return s.newSession(account)
}

// Authenticate resolves a token string to the account it asserts. It is
// the single source of truth for "is this request logged in".
func (s *AuthService) Authenticate(ctx context.Context, token string) (*AccountSummary, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// account deleted after the token was minted
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	summary := account.Summary()
	return &summary, nil
}

func (s *AuthService) newSession(account *Account) (*Session, error) {
	token, exp, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{
		Account:   account.Summary(),
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

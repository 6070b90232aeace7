package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "prepwise"

// DefaultTokenValidity is the session token lifetime.
const DefaultTokenValidity = 7 * 24 * time.Hour

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenIssuer signs and verifies HS256 session tokens asserting an account
// id. Tokens are stateless: there is no revocation list, a token is valid
// until its expiry or not at all.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, validity: validity}
}

func (t *TokenIssuer) Validity() time.Duration {
	return t.validity
}

// Issue mints a token for accountID expiring after the configured validity.
func (t *TokenIssuer) Issue(accountID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.validity)
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", exp, fmt.Errorf("signing token: %w", err)
	}
	return signed, exp, nil
}

// Verify returns the account id the token asserts. Expired tokens fail
// with ErrTokenExpired; malformed tokens and bad signatures fail with
// ErrTokenInvalid.
func (t *TokenIssuer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	switch {
	case err == nil && parsed.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	default:
		return "", ErrTokenInvalid
	}
}

package core

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type BaseFixture struct {
	ctx      context.Context
	db       *sql.DB
	t        *testing.T
	tearDown func()
}

func NewBaseFixture(t *testing.T) *BaseFixture {
	ctx, cancel := context.WithCancel(context.Background())

	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Fatal(err)
	}

	goose.SetBaseFS(os.DirFS("../migrations"))

	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatal(err)
	}

	if err := goose.Up(db, "."); err != nil {
		t.Fatal(err)
	}

	return &BaseFixture{
		ctx: ctx,
		db:  db,
		t:   t,
		tearDown: func() {
			cancel()
			db.Close()
		},
	}
}

type AuthFixture struct {
	*BaseFixture
	userStore UserStore
	hasher    *PasswordHasher
	tokens    *TokenIssuer
	auth      *AuthService
}

func NewAuthFixture(t *testing.T) *AuthFixture {
	base := NewBaseFixture(t)

	userStore := NewSQLiteUserStore(base.db)
	hasher := NewPasswordHasher(0)
	tokens := NewTokenIssuer(secret, time.Hour)

	return &AuthFixture{
		BaseFixture: base,
		userStore:   userStore,
		hasher:      hasher,
		tokens:      tokens,
		auth:        NewAuthService(userStore, hasher, tokens),
	}
}

func (f *AuthFixture) seedAccount(name, email, password string) *Session {
	session, err := f.auth.Register(f.ctx, name, email, password)
	if err != nil {
		f.t.Fatal(err)
	}
	return session
}

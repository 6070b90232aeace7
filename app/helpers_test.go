package prepwise

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/prepwise/prepwise/core"
	"github.com/prepwise/prepwise/pkg/router"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type TestApp struct {
	server *httptest.Server
	client *http.Client
	tokens *core.TokenIssuer
	t      *testing.T
}

// newTestApp wires the auth stack the same way App does, against an
// in-memory database and a development-mode cookie manager.
func newTestApp(t *testing.T) *TestApp {
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

	tokens := core.NewTokenIssuer(testSecret, time.Hour)
	auth := core.NewAuthService(
		core.NewSQLiteUserStore(db),
		core.NewPasswordHasher(0),
		tokens,
	)
	cookies := core.NewSessionCookies(false, tokens.Validity())
	handler := NewAuthHandler(auth, cookies)

	r := router.New(router.WithDefaultError(errInternal))
	r.Route("/api/auth", func(r *router.Router) {
		r.Post("/register", handler.RegisterHandler)
		r.Post("/login", handler.LoginHandler)
		r.Post("/logout", handler.LogoutHandler)
		r.With(RequireSession(auth)).Get("/me", handler.MeHandler)
	})

	server := httptest.NewServer(r.Router)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := server.Client()
	client.Jar = jar

	app := &TestApp{server: server, client: client, tokens: tokens, t: t}
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})
	return app
}

func (a *TestApp) post(path string, payload any) *http.Response {
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		a.t.Fatal(err)
	}

	res, err := a.client.Post(a.server.URL+path, "application/json", body)
	if err != nil {
		a.t.Fatal(err)
	}
	return res
}

func (a *TestApp) get(path string) *http.Response {
	res, err := a.client.Get(a.server.URL + path)
	if err != nil {
		a.t.Fatal(err)
	}
	return res
}

// decodeBody decodes the response into a generic map so tests can assert
// on the exact wire shape, absent fields included.
func decodeBody(t *testing.T, res *http.Response) map[string]any {
	defer res.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

package prepwise

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prepwise/prepwise/core"
	"github.com/prepwise/prepwise/pkg/router"
)

type accountKey struct{}

func ContextWithAccount(ctx context.Context, account core.AccountSummary) context.Context {
	return context.WithValue(ctx, accountKey{}, account)
}

func AccountFromContext(ctx context.Context) (core.AccountSummary, bool) {
	account, ok := ctx.Value(accountKey{}).(core.AccountSummary)
	return account, ok
}

// AccountFromRequest extracts the authenticated account from the request
// context. It must be called in handlers protected by RequireSession; it
// panics otherwise.
func AccountFromRequest(r *http.Request) core.AccountSummary {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		panic("account not found in request context: protect the handler with RequireSession")
	}
	return account
}

// RequireSession verifies the session cookie against the auth service and
// attaches the resolved account to the request context. Requests without a
// valid, unexpired token are rejected with 401.
func RequireSession(auth *core.AuthService) router.Middleware {
	return func(next http.Handler) router.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			cookie, err := r.Cookie(core.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return errUnauthenticated
			}

			account, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, core.ErrTokenExpired) || errors.Is(err, core.ErrTokenInvalid) {
					return errUnauthenticated
				}
				return fmt.Errorf("authenticating session: %w", err)
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), *account)))
			return nil
		}
	}
}

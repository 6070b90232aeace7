package prepwise

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prepwise/prepwise/core"
)

const (
	msgMissingDetails         = "Missing Details"
	msgMissingEmailOrPassword = "Missing Email or Password"
	msgUserExists             = "User Already Exists"
	msgInvalidCredentials     = "Invalid credentials"
	msgRegistered             = "User registered successfully"
	msgLoginSuccessful        = "Login successful"
	msgLogoutSuccessful       = "Logout successful"
)

type AuthHandler struct {
	auth    *core.AuthService
	cookies *core.SessionCookies
}

func NewAuthHandler(auth *core.AuthService, cookies *core.SessionCookies) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) error {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return failure(msgMissingDetails)
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		return failure(msgMissingDetails)
	}

	session, err := h.auth.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingFields):
			return failure(msgMissingDetails)
		case errors.Is(err, core.ErrDuplicateEmail):
			return failure(msgUserExists)
		default:
			return fmt.Errorf("register: %w", err)
		}
	}

	h.cookies.Attach(w, session.Token)

	return writeJSON(w, authResponse{
		Success: true,
		Message: msgRegistered,
		Token:   session.Token,
		User:    &session.Account,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return failure(msgMissingEmailOrPassword)
	}
	defer r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		return failure(msgMissingEmailOrPassword)
	}

	session, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingFields):
			return failure(msgMissingEmailOrPassword)
		// unknown account and wrong password are indistinguishable on
		// the wire so responses do not leak account existence
		case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrBadCredentials):
			return failure(msgInvalidCredentials)
		default:
			return fmt.Errorf("login: %w", err)
		}
	}

	h.cookies.Attach(w, session.Token)

	return writeJSON(w, authResponse{
		Success: true,
		Message: msgLoginSuccessful,
		Token:   session.Token,
		User:    &session.Account,
	})
}

// LogoutHandler clears the session cookie. It does not consult the store
// and succeeds regardless of whether a session existed.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) error {
	h.cookies.Clear(w)
	return writeJSON(w, authResponse{
		Success: true,
		Message: msgLogoutSuccessful,
	})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) error {
	account := AccountFromRequest(r)
	return writeJSON(w, authResponse{
		Success: true,
		User:    &account,
	})
}

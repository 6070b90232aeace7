package prepwise

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/prepwise/prepwise/core"
)

// authResponse is the wire shape of every auth endpoint, success or not.
type authResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Token   string               `json:"token,omitempty"`
	User    *core.AccountSummary `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// responseError renders as {success:false, message}. Business-rule
// failures use status 200; only infrastructure failures produce 5xx.
type responseError struct {
	code    int
	message string
}

func failure(message string) responseError {
	return responseError{code: http.StatusOK, message: message}
}

func (e responseError) Error() string {
	return e.message
}

func (e responseError) StatusCode() int {
	return e.code
}

func (e responseError) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(authResponse{Success: false, Message: e.message})
}

var (
	errUnauthenticated = responseError{code: http.StatusUnauthorized, message: "Unauthenticated"}
	errInternal        = responseError{code: http.StatusInternalServerError, message: "Internal Server Error"}
)

package router

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"reflect"
	"runtime"

	"github.com/go-chi/chi/v5"
)

var DefaultError = JsonError{
	Code: http.StatusInternalServerError,
	Err:  "internal server error",
}

// Router wraps chi.Router so that handlers can return errors instead of
// writing error responses themselves. Returned errors are matched against
// registered mappers with errors.Is; unmatched errors fall through to the
// default error and are logged with the handler name.
type Router struct {
	chi.Router
	mappers      []mapping
	defaultError Error
	logger       *slog.Logger
}

type mapping struct {
	target error
	fn     ErrorMapper
}

// ErrorMapper converts a domain error into a response error.
type ErrorMapper func(error) Error

// HandlerFunc handles an HTTP request and returns an error. A failing
// handler should not have written to the response writer.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

type Middleware func(http.Handler) HandlerFunc

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithDefaultError(err Error) Option {
	return func(r *Router) {
		r.defaultError = err
	}
}

func New(opts ...Option) *Router {
	return wrap(chi.NewRouter(), opts...)
}

func wrap(chiRouter chi.Router, opts ...Option) *Router {
	router := &Router{
		Router:       chiRouter,
		defaultError: DefaultError,
		logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(router)
	}
	return router
}

// Map registers fn for errors matching target. Mappers are tried in
// registration order.
func (a *Router) Map(target error, fn ErrorMapper) {
	a.mappers = append(a.mappers, mapping{target: target, fn: fn})
}

func (a *Router) mapError(err error) Error {
	var resErr Error
	if errors.As(err, &resErr) {
		return resErr
	}

	for _, m := range a.mappers {
		if errors.Is(err, m.target) {
			return m.fn(err)
		}
	}
	return a.defaultError
}

func (a *Router) handleWithErr(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		resErr := a.mapError(err)
		if resErr.StatusCode() >= http.StatusInternalServerError {
			handlerFn := runtime.FuncForPC(reflect.ValueOf(h).Pointer())
			a.logger.Error(err.Error(),
				slog.String("handler", handlerFn.Name()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resErr.StatusCode())
		if err := resErr.Encode(w); err != nil {
			a.logger.Error("encoding error response", slog.String("error", err.Error()))
		}
	}
}

func (a *Router) Get(path string, h HandlerFunc) {
	a.Router.Get(path, a.handleWithErr(h))
}

func (a *Router) Post(path string, h HandlerFunc) {
	a.Router.Post(path, a.handleWithErr(h))
}

func (a *Router) Put(path string, h HandlerFunc) {
	a.Router.Put(path, a.handleWithErr(h))
}

func (a *Router) Delete(path string, h HandlerFunc) {
	a.Router.Delete(path, a.handleWithErr(h))
}

func (a *Router) Route(path string, f func(r *Router)) {
	a.Router.Route(path, func(r chi.Router) {
		f(a.child(r))
	})
}

func (a *Router) Use(middleware Middleware) {
	a.Router.Use(func(h http.Handler) http.Handler {
		return a.handleWithErr(middleware(h))
	})
}

func (a *Router) With(middleware Middleware) *Router {
	ch := a.Router.With(func(h http.Handler) http.Handler {
		return a.handleWithErr(middleware(h))
	})
	return a.child(ch)
}

// child shares mappers, default error and logger with sub-routers.
func (a *Router) child(r chi.Router) *Router {
	return &Router{
		Router:       r,
		mappers:      a.mappers,
		defaultError: a.defaultError,
		logger:       a.logger,
	}
}

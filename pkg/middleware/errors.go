package middleware

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/resolver"
)

// HTTPError is an error that knows its response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError attaches a status code to a load failure.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// StatusFor maps a load error to a response status. Unknown sources are 404,
// missing parameters 400, anything else 500.
func StatusFor(err error) int {
	var httpErr HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, resolver.ErrUnknownSource):
		return http.StatusNotFound
	case errors.Is(err, interpolate.ErrMissingParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler writes the response for a failed load.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler writes the status text for StatusFor(err). Internal
// error details are not exposed to clients.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := StatusFor(err)
	http.Error(w, http.StatusText(code), code)
}

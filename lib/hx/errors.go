package hx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pthm/hxdemo/lib/encoding"
)

var (
	ErrNotFound         = errors.New("hx: not found")
	ErrMethodNotAllowed = errors.New("hx: method not allowed")
	ErrBadProps         = errors.New("hx: invalid props")
	ErrHydrationFailed  = errors.New("hx: hydration failed")
)

// Props decoding failures, wrapped in ErrBadProps.
var (
	ErrInvalidFormat    = encoding.ErrInvalidFormat
	ErrSignatureInvalid = encoding.ErrSignatureInvalid
	ErrDecryptFailed    = encoding.ErrDecryptFailed
)

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError reports whether err comes from props that failed
// verification or decryption.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// DefaultErrorHandler maps errors to plain-text responses. Unexpected errors
// are logged with logger.
func DefaultErrorHandler(logger *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.Is(err, ErrMethodNotAllowed):
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		case errors.Is(err, ErrBadProps):
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			logger.Error("component request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}
}

package hx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: x", ErrNotFound), http.StatusNotFound},
		{"method", fmt.Errorf("%w: x", ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{"bad props", fmt.Errorf("%w: %w", ErrBadProps, ErrSignatureInvalid), http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
		{"hydration", fmt.Errorf("%w: boom", ErrHydrationFailed), http.StatusInternalServerError},
	}
	h := DefaultErrorHandler(discard)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/_c/x", nil), tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrapped: %w", ErrNotFound)) {
		t.Error("IsNotFound missed a wrapped error")
	}
	if !IsDecryptionError(fmt.Errorf("%w: %w", ErrBadProps, ErrDecryptFailed)) {
		t.Error("IsDecryptionError missed decrypt failure")
	}
	if IsDecryptionError(ErrInvalidFormat) {
		t.Error("format errors are not decryption errors")
	}
}

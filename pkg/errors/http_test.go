package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NewNotFoundError("land", "1"), http.StatusNotFound},
		{"conflict", NewStateConflictError("land", "1", "duplicate id"), http.StatusConflict},
		{"authorization", NewAuthorizationError("verifyLand", "admin"), http.StatusForbidden},
		{"invalid argument", NewInvalidArgumentError("owner", "zero identity", nil), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticatedError(""), http.StatusUnauthorized},
		{"rate limit", NewRateLimitError("", "1s"), http.StatusTooManyRequests},
		{"storage", NewStorageError("append", "", errors.New("io")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"sentinel conflict", ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, got)
			}
		})
	}
}

func TestToHTTPError(t *testing.T) {
	err := NewStateConflictError("land", "3", "not verified")
	httpErr := ToHTTPError(err)
	if httpErr.Status != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", httpErr.Status)
	}
	if httpErr.Code != CodeStateConflict {
		t.Errorf("Expected code %q, got %q", CodeStateConflict, httpErr.Code)
	}
	if httpErr.Details["reason"] != "not verified" {
		t.Errorf("Expected reason detail, got %v", httpErr.Details)
	}

	if ToHTTPError(nil) != nil {
		t.Error("ToHTTPError(nil) should be nil")
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidArgumentError(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		message       string
		value         interface{}
		expectedError string
	}{
		{
			name:          "with field",
			field:         "newOwner",
			message:       "owner cannot be the zero identity",
			value:         "0x0000000000000000000000000000000000000000",
			expectedError: "invalid argument: newOwner: owner cannot be the zero identity",
		},
		{
			name:          "without field",
			field:         "",
			message:       "invalid input",
			value:         nil,
			expectedError: "invalid argument: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidArgumentError(tt.field, tt.message, tt.value)
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
			}
			if err.Code() != CodeInvalidArgument {
				t.Errorf("Expected code %q, got %q", CodeInvalidArgument, err.Code())
			}
			if err.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, err.Field)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name          string
		resource      string
		id            string
		expectedError string
	}{
		{
			name:          "with ID",
			resource:      "land",
			id:            "42",
			expectedError: "land with ID '42' not found",
		},
		{
			name:          "without ID",
			resource:      "land",
			id:            "",
			expectedError: "land not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.resource, tt.id)
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
			}
			if err.Code() != CodeNotFound {
				t.Errorf("Expected code %q, got %q", CodeNotFound, err.Code())
			}
		})
	}
}

func TestAuthorizationError(t *testing.T) {
	err := NewAuthorizationError("registerLand", "admin")
	want := "not authorized: registerLand requires admin"
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
	if err.Code() != CodeAuthorization {
		t.Errorf("Expected code %q, got %q", CodeAuthorization, err.Code())
	}
	if !IsAuthorization(err) {
		t.Error("IsAuthorization should match AuthorizationError")
	}
}

func TestStateConflictError(t *testing.T) {
	err := NewStateConflictError("land", "7", "already verified")
	want := "land '7': already verified"
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
	if !IsStateConflict(err) {
		t.Error("IsStateConflict should match StateConflictError")
	}
}

func TestHelpersMatchWrappedErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matcher func(error) bool
	}{
		{"wrapped not found", fmt.Errorf("get: %w", NewNotFoundError("land", "1")), IsNotFound},
		{"wrapped conflict", fmt.Errorf("verify: %w", NewStateConflictError("land", "1", "already verified")), IsStateConflict},
		{"wrapped authorization", fmt.Errorf("register: %w", NewAuthorizationError("registerLand", "admin")), IsAuthorization},
		{"wrapped invalid argument", fmt.Errorf("transfer: %w", NewInvalidArgumentError("newOwner", "zero identity", nil)), IsInvalidArgument},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.matcher(tt.err) {
				t.Errorf("matcher did not match %v", tt.err)
			}
		})
	}
}

func TestHelpersRejectOtherKinds(t *testing.T) {
	conflict := NewStateConflictError("land", "1", "not verified")
	if IsNotFound(conflict) {
		t.Error("IsNotFound should not match a conflict")
	}
	if IsAuthorization(conflict) {
		t.Error("IsAuthorization should not match a conflict")
	}
	if IsNotFound(nil) || IsStateConflict(nil) || IsAuthorization(nil) || IsInvalidArgument(nil) {
		t.Error("helpers should not match nil")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"nil", nil, CodeOK},
		{"typed", NewNotFoundError("land", "9"), CodeNotFound},
		{"wrapped typed", fmt.Errorf("op: %w", NewStateConflictError("land", "9", "duplicate id")), CodeStateConflict},
		{"plain", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.code {
				t.Errorf("Expected code %q, got %q", tt.code, got)
			}
		})
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("append", "journal append failed", cause)
	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}
}

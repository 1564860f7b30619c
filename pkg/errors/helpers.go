package errors

import "errors"

// IsNotFound checks if an error indicates an unregistered land id.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}

	var invalidErr *InvalidArgumentError
	return errors.As(err, &invalidErr) || errors.Is(err, ErrInvalidInput)
}

// IsAuthorization checks if an error indicates a missing role.
func IsAuthorization(err error) bool {
	if err == nil {
		return false
	}

	var authErr *AuthorizationError
	return errors.As(err, &authErr) || errors.Is(err, ErrForbidden)
}

// IsStateConflict checks if an error indicates the ledger state rejected
// the operation.
func IsStateConflict(err error) bool {
	if err == nil {
		return false
	}

	var conflictErr *StateConflictError
	return errors.As(err, &conflictErr) || errors.Is(err, ErrConflict)
}

// IsUnauthenticated checks if an error indicates a missing or invalid
// caller signature.
func IsUnauthenticated(err error) bool {
	if err == nil {
		return false
	}

	var unauthErr *UnauthenticatedError
	return errors.As(err, &unauthErr) || errors.Is(err, ErrUnauthorized)
}

// IsStorage checks if an error is a storage error.
func IsStorage(err error) bool {
	if err == nil {
		return false
	}

	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}

	var internalErr *InternalError
	return errors.As(err, &internalErr) || errors.Is(err, ErrInternal)
}

// IsRateLimit checks if an error indicates rate limiting.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	// Try to infer from sentinel errors
	switch {
	case IsNotFound(err):
		return CodeNotFound
	case IsInvalidArgument(err):
		return CodeInvalidArgument
	case IsAuthorization(err):
		return CodeAuthorization
	case IsStateConflict(err):
		return CodeStateConflict
	case IsUnauthenticated(err):
		return CodeUnauthenticated
	default:
		return CodeInternal
	}
}

// GetErrorMessage extracts a human-readable message from an error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Message()
	}

	return err.Error()
}

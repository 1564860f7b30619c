package errors

// Error codes for categorizing ledger errors.
// These codes map to HTTP status codes where applicable.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeUnknown indicates an unknown error occurred.
	CodeUnknown = "UNKNOWN"

	// CodeInvalidArgument indicates the caller supplied an invalid argument,
	// e.g. a zero identity or a self-transfer.
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeNotFound indicates a referenced land id is not registered.
	CodeNotFound = "NOT_FOUND"

	// CodeStateConflict indicates the operation is rejected because the ledger
	// is not in the required state: duplicate registration, verifying an
	// already-verified land, transferring an unverified land.
	CodeStateConflict = "STATE_CONFLICT"

	// CodeAuthorization indicates the caller lacks the role the operation
	// requires (admin or current owner).
	CodeAuthorization = "AUTHORIZATION"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// CodeStorageError indicates a journal or snapshot operation failed.
	CodeStorageError = "STORAGE_ERROR"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"

	// CodeUnauthenticated indicates the request does not carry a valid
	// caller signature.
	CodeUnauthenticated = "UNAUTHENTICATED"

	// CodeRateLimit indicates the caller exceeded the request budget.
	CodeRateLimit = "RATE_LIMIT_EXCEEDED"
)

// ErrorCategory represents a high-level error category.
type ErrorCategory string

const (
	// CategoryClient indicates a client-side error (4xx).
	CategoryClient ErrorCategory = "CLIENT_ERROR"

	// CategoryServer indicates a server-side error (5xx).
	CategoryServer ErrorCategory = "SERVER_ERROR"

	// CategoryAuth indicates an authentication/authorization error.
	CategoryAuth ErrorCategory = "AUTH_ERROR"
)

// GetCategory returns the category for an error code.
func GetCategory(code string) ErrorCategory {
	switch code {
	case CodeInvalidArgument, CodeNotFound, CodeStateConflict, CodeRateLimit:
		return CategoryClient

	case CodeAuthorization, CodeUnauthenticated:
		return CategoryAuth

	default:
		return CategoryServer
	}
}

// IsClientError returns true for codes the caller can remediate by changing
// the request; retrying the identical operation will not succeed.
func IsClientError(code string) bool {
	cat := GetCategory(code)
	return cat == CategoryClient || cat == CategoryAuth
}

package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for an error.
// It maps error codes to appropriate HTTP status codes.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return codeToHTTPStatus(customErr.Code())
	}

	// Check sentinel errors
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// codeToHTTPStatus maps an error code to an HTTP status.
func codeToHTTPStatus(code string) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeStateConflict:
		return http.StatusConflict
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeStorageError, CodeInternal, CodeConfigError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ToHTTPError converts any error to an HTTPError suitable for JSON encoding.
func ToHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	httpErr := &HTTPError{
		Status:  StatusCode(err),
		Code:    GetErrorCode(err),
		Message: GetErrorMessage(err),
	}

	// Attach structured detail fields where the typed error carries them.
	var notFoundErr *NotFoundError
	var conflictErr *StateConflictError
	var authErr *AuthorizationError
	var invalidErr *InvalidArgumentError

	switch {
	case errors.As(err, &notFoundErr):
		httpErr.Details = map[string]string{"resource": notFoundErr.Resource, "id": notFoundErr.ID}
	case errors.As(err, &conflictErr):
		httpErr.Details = map[string]string{"resource": conflictErr.Resource, "id": conflictErr.ID, "reason": conflictErr.Reason}
	case errors.As(err, &authErr):
		httpErr.Details = map[string]string{"operation": authErr.Operation, "required": authErr.Required}
	case errors.As(err, &invalidErr):
		if invalidErr.Field != "" {
			httpErr.Details = map[string]string{"field": invalidErr.Field}
		}
	}

	return httpErr
}

// WriteHTTPError writes an error as a JSON response.
func WriteHTTPError(w http.ResponseWriter, err error) {
	httpErr := ToHTTPError(err)
	if httpErr == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

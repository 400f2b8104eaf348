package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the domain taxonomy. Services normalize every failure
// to one of these marks before it reaches the HTTP layer; no raw gateway SDK
// error ever crosses that boundary.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrValidation          = errors.New("validation error")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrProtectedResource   = errors.New("protected resource")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrHTTPClient          = errors.New("http client error")
	ErrDatabase            = errors.New("database error")
	ErrInternal            = errors.New("internal error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrAlreadyExists:       http.StatusConflict,
		ErrValidation:          http.StatusBadRequest,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrPermissionDenied:    http.StatusForbidden,
		ErrProtectedResource:   http.StatusForbidden,
		ErrProviderUnavailable: http.StatusBadGateway,
		ErrHTTPClient:          http.StatusInternalServerError,
		ErrDatabase:            http.StatusInternalServerError,
		ErrInternal:            http.StatusInternalServerError,
	}
)

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsProtectedResource checks if an error is a protected resource error
func IsProtectedResource(err error) bool {
	return errors.Is(err, ErrProtectedResource)
}

// IsProviderUnavailable checks if an error is a provider unavailable error
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// HTTPStatusFromErr resolves the HTTP status code for a marked error
func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

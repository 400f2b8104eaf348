package httpclient

import (
	"fmt"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/cockroachdb/errors"
)

// Error represents an HTTP client error carrying the upstream status code
// and raw response body for gateway-specific handling.
type Error struct {
	StatusCode int
	Response   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("http client error: status %d", e.StatusCode)
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) error {
	return errors.Mark(&Error{
		StatusCode: statusCode,
		Response:   response,
	}, ierr.ErrHTTPClient)
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

package cloudapi

import (
	"errors"
	"fmt"
	"strings"
)

// API error codes returned by the control plane.
const (
	ErrCodeUnauthorized     = 401
	ErrCodeParamError       = 431
	ErrCodeInternalError    = 530
	ErrCodeResourceInUse    = 536
	ErrCodeResourceNotFound = 404
)

// APIError is a request the control plane received and rejected.
type APIError struct {
	Command string
	Code    int
	Text    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed (code %d): %s", e.Command, e.Code, e.Text)
}

// IsAPIError reports whether err is a rejection by the control plane, as opposed
// to a transport failure or cancellation.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNameConflict reports whether the API rejected a create because the name is taken.
func IsNameConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	text := strings.ToLower(apiErr.Text)
	return apiErr.Code == ErrCodeParamError && strings.Contains(text, "already exists")
}

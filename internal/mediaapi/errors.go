package mediaapi

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested media id does not exist
// server-side.
var ErrNotFound = errors.New("media not found")

// ServerError is a non-success response from the media service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("media service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("media service returned status %d: %s", e.StatusCode, e.Message)
}

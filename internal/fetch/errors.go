package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that the requested changelog does not exist: an HTTP
// 404 or a missing local file.
type NotFoundError struct {
	Location string
	// Status is the HTTP status line for remote locations, empty for files.
	Status string
}

func (e *NotFoundError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("failed to fetch %s: %s", e.Location, e.Status)
	}
	return fmt.Sprintf("file not found: %s", e.Location)
}

// StatusError reports a non-2xx HTTP response other than 404.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	// Message is the server's explanation pulled from a JSON error body, if any.
	Message string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// IsNotFound reports whether err means the changelog is absent. Besides the
// typed NotFoundError, any error whose message mentions "404" or "not found"
// counts, so errors from other Fetcher implementations are recognized too.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}

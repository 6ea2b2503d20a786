package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed backend call. The retry loop inspects the
// classification before retrying: only server-class failures are
// retried, network-class failures fall back to fixtures, and
// client-class failures propagate to the caller.
type Kind int

const (
	KindNetwork Kind = iota
	KindServer
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	}
	return "unknown"
}

// APIError carries the classification, the HTTP status, and the raw
// error body of a failed backend call.
type APIError struct {
	Kind       Kind
	StatusCode int
	Body       []byte
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, fmt.Sprintf("api error (%s)", e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsStatus reports whether err (or any wrapped error) is an APIError
// with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

func classifyStatus(statusCode int) Kind {
	if statusCode >= http.StatusInternalServerError {
		return KindServer
	}
	return KindClient
}

func statusErrorMessage(statusCode int, body []byte) string {
	base := fmt.Sprintf("backend returned status %d", statusCode)
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, trimmed)
}

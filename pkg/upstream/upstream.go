package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// Error is a non-2xx response from an external service.
type Error struct {
	Service string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: http %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Service, e.Status, e.Message)
}

// Transient reports whether retrying might succeed. Auth and validation
// rejections never are.
func (e *Error) Transient() bool {
	return e.Status == http.StatusRequestTimeout ||
		e.Status == http.StatusTooManyRequests ||
		e.Status >= http.StatusInternalServerError
}

// IsTransient classifies a collaborator failure: upstream 408/429/5xx,
// timeouts and network errors are transient.
func IsTransient(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Transient()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// FromResponse drains a failed response into an *Error, picking a message
// out of the common JSON error shapes when there is one.
func FromResponse(service string, resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	return &Error{Service: service, Status: resp.StatusCode, Message: extractMessage(raw)}
}

func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if body.Message != "" {
		return body.Message
	}
	switch e := body.Error.(type) {
	case string:
		return e
	case map[string]any:
		if m, ok := e["message"].(string); ok {
			return m
		}
	}
	return ""
}

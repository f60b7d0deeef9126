package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoSchedule marks the 404 on /api/schedule/current: no schedule exists
// yet, which callers treat as an empty state rather than a failure.
var ErrNoSchedule = errors.New("no schedule yet")

// Error is a non-2xx response. The server's message is surfaced verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func decodeError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &Error{Status: status, Message: strings.TrimSpace(envelope.Message)}
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

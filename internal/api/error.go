package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a failure reported by the backend. The message is the backend's
// own error string when one was decodable, so it can be shown verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: HTTP %d", e.Status)
}

// apiError builds an *Error from a non-2xx response body. The backend wraps
// every failure as {"error": "..."}; anything else falls back to the raw body.
func apiError(status int, body []byte) error {
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		return &Error{Status: status, Message: wire.Error}
	}
	return &Error{Status: status, Message: strings.TrimSpace(string(body))}
}

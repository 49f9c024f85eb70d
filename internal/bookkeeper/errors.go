package bookkeeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// RemoteError is a non-2xx answer from the bookkeeping API. Message carries
// the server-provided error text when the body contained one, otherwise a
// generic transport message.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bookkeeping API error (status %d): %s", e.StatusCode, e.Message)
}

// IsValidation reports whether the server rejected the request itself rather
// than failing to process it.
func (e *RemoteError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// remoteErrorFromResponse builds a RemoteError from a non-2xx response,
// extracting the server message from an {"error": "..."} body when present.
func remoteErrorFromResponse(resp *http.Response) error {
	message := "request failed"

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			message = payload.Error
		}
	}

	return &RemoteError{StatusCode: resp.StatusCode, Message: message}
}

// RemoteMessage extracts the user-facing message from a client error: the
// server-provided text for remote errors, a generic transport message for
// everything else.
func RemoteMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	return "failed to reach the bookkeeping service"
}

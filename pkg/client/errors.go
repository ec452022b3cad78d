package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrAuthExpired reports that the backend rejected the request credentials.
// The client never reacts to it itself; the session controller owns credential
// clearing and any view transition.
var ErrAuthExpired = errors.New("authentication expired")

// RequestError carries the human readable message of a failed API request.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap matches 401 responses against ErrAuthExpired via errors.Is.
func (e *RequestError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}

	return nil
}

// errorResponse is the structured error body the backend returns on
// application errors.
type errorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// responseError converts a non-2xx response into a RequestError. 401s match
// ErrAuthExpired via errors.Is.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	msg := string(body)

	var structured errorResponse
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			msg = structured.Error
		} else if structured.Message != "" {
			msg = structured.Message
		}
	}

	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

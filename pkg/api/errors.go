package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
)

// TransportError is a network failure or a non-2xx response without a
// usable detail. Surfaced with a generic message; never retried
// automatically.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx response carrying the server's structured
// detail (for example a quota rejection). The detail is shown verbatim.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string { return e.Detail }

type errorBody struct {
	Detail string `json:"detail"`
}

// classifyResponse maps a non-2xx response to the error taxonomy:
// 401 → auth.AuthError, structured detail → ServiceError, anything
// else → TransportError.
func classifyResponse(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode == http.StatusUnauthorized {
		return &auth.AuthError{Detail: "session expired, please sign in again"}
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Detail != "" {
		return &ServiceError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	return &TransportError{Op: op, Status: resp.StatusCode}
}

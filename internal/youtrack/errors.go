package youtrack

import "fmt"

// unexpectedErrorMessage is returned for unclassified failures. The
// original cause is logged but never exposed to the tool caller.
const unexpectedErrorMessage = "An unexpected error occurred"

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	// ErrTransport covers network-level failures: connection refused,
	// timeout, DNS resolution.
	ErrTransport ErrorKind = "transport"
	// ErrHTTPStatus covers 4xx/5xx responses from YouTrack.
	ErrHTTPStatus ErrorKind = "http-status"
	// ErrReadOnly marks a mutating call rejected before any network I/O
	// because the server runs in read-only mode.
	ErrReadOnly ErrorKind = "read-only"
	// ErrUnexpected covers everything else, e.g. a malformed response body.
	ErrUnexpected ErrorKind = "unexpected"
)

// APIError is the tagged, internal form of a failed call. It never
// crosses the adapter boundary as a Go error: tool callers only ever see
// the flattened Result form.
type APIError struct {
	Kind    ErrorKind
	Status  int    // HTTP status code when Kind is ErrHTTPStatus
	Message string // flattened message exposed to tool callers
	Cause   error  // original cause, kept for logging
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Result flattens the error into the uniform {"error": message} mapping
// that every operation returns on failure.
func (e *APIError) Result() map[string]any {
	return map[string]any{"error": e.Message}
}

func transportError(cause error) *APIError {
	return &APIError{Kind: ErrTransport, Message: cause.Error(), Cause: cause}
}

func statusError(status int, body string) *APIError {
	return &APIError{
		Kind:    ErrHTTPStatus,
		Status:  status,
		Message: fmt.Sprintf("YouTrack API error (status %d): %s", status, body),
	}
}

func readOnlyError(operation string) *APIError {
	return &APIError{
		Kind:    ErrReadOnly,
		Message: fmt.Sprintf("read-only mode: %s is disabled", operation),
	}
}

func unexpectedError(cause error) *APIError {
	return &APIError{Kind: ErrUnexpected, Message: unexpectedErrorMessage, Cause: cause}
}

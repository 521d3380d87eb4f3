package types

import (
	"fmt"
	"strings"
)

// ResultSuccess is the envelope value the server returns on success. Any
// other value (the server uses "failure") means the errors array applies.
const ResultSuccess = "success"

// CodeAuthFailure is the server error code for invalid or expired
// credentials. Codes are zero-padded strings on the wire.
const CodeAuthFailure = "0200"

// Envelope is the portion of every JSON response the pipeline interprets.
// The rest of the body is passed through to callers untouched.
type Envelope struct {
	Result string        `json:"result"`
	Errors []ErrorDetail `json:"errors"`
}

// ErrorDetail is one server-reported error. Multiple errors may share a code.
type ErrorDetail struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// APIError is returned when the server answers with a non-success envelope.
// The full error list is preserved for caller inspection; the server's error
// code catalog documents the possible values.
type APIError struct {
	Errors []ErrorDetail
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return "ohmage api error"
	}
	parts := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		parts[i] = fmt.Sprintf("%s (code: %s)", d.Text, d.Code)
	}
	return "ohmage api error: " + strings.Join(parts, ", ")
}

// Codes returns the error codes that produced this error, preserving the
// wire format's zero padding.
func (e *APIError) Codes() []string {
	codes := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		codes[i] = d.Code
	}
	return codes
}

// HasCode reports whether any of the reported errors carries code.
func (e *APIError) HasCode(code string) bool {
	for _, d := range e.Errors {
		if d.Code == code {
			return true
		}
	}
	return false
}

// HTTPError reports a non-200 HTTP response whose body carried no parseable
// error envelope. When the body does parse as an envelope, an *APIError is
// raised instead.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("ohmage: server errored with HTTP %d", e.StatusCode)
}

package ohmage

import "github.com/ohmage/ohmage-go/internal/types"

// Public type aliases so SDK consumers can import only the ohmage package.
type (
	// Params carries request parameters forwarded verbatim to the server.
	Params = types.Params

	// Credentials is the username / hashed password / token triple cached
	// by Login.
	Credentials = types.Credentials

	// APIError is returned when the server answers with a non-success
	// envelope; Codes() exposes the server error codes.
	APIError = types.APIError

	// HTTPError reports a non-200 HTTP response without an error envelope.
	HTTPError = types.HTTPError

	// ErrorDetail is one server-reported error code/text pair.
	ErrorDetail = types.ErrorDetail
)

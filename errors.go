package ohmage

import (
	"errors"

	"github.com/ohmage/ohmage-go/internal/types"
)

// ErrAuthFailed marks authentication failures during Login. The underlying
// *APIError (server code "0200") remains reachable via errors.As.
var ErrAuthFailed = errors.New("ohmage: authentication failed")

// CodeAuthFailure is the server error code for invalid or expired
// credentials. Re-authenticating is the usual response to seeing it.
const CodeAuthFailure = types.CodeAuthFailure

// IsAuthFailure reports whether err is an authentication failure: either the
// ErrAuthFailed sentinel or any server error carrying code "0200" (e.g. an
// expired token on a later request).
func IsAuthFailure(err error) bool {
	if errors.Is(err, ErrAuthFailed) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HasCode(CodeAuthFailure)
}

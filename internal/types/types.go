// Package types holds the wire and domain types shared between the public
// SDK surface and the internal API layer.
package types

// Params carries request parameters destined for the server. Parameters are
// forwarded verbatim; validation is the server's job. Empty values are
// dropped at encode time.
type Params map[string]string

// Clone returns a shallow copy so callers' maps are never mutated by
// credential injection or defaulting.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Credentials is the set of credentials a handle caches after Login.
//
// The token is short-lived and times out server-side; the hashed password
// remains valid indefinitely and is required by a few endpoints (notably
// survey upload).
type Credentials struct {
	Username       string
	HashedPassword string
	Token          string
}

// HasToken reports whether token-based authentication is possible.
func (c Credentials) HasToken() bool { return c.Token != "" }

// HasPassword reports whether hashed-password authentication is possible.
func (c Credentials) HasPassword() bool { return c.Username != "" && c.HashedPassword != "" }

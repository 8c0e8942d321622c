// Package usecase contains application-level services.
package usecase

// IdentityProvider yields the per-install user identifier.
type IdentityProvider interface {
	UserID() (string, error)
}

// StaticIdentity is an IdentityProvider with a fixed id.
type StaticIdentity string

// UserID returns the fixed id.
func (s StaticIdentity) UserID() (string, error) {
	return string(s), nil
}

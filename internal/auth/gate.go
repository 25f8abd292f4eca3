package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized is returned for bad credentials or a missing capability.
var ErrUnauthorized = errors.New("unauthorized")

type capabilityKey struct{}

type capability struct {
	gate     *Gate
	username string
}

// Gate checks admin credentials and hands out a capability that authorizes
// catalog mutations. It keeps casual mistakes out of the admin commands; it is
// not a security boundary.
type Gate struct {
	username     string
	passwordHash string
}

// NewGate creates a gate for the given user and bcrypt hash. A gate with an
// empty hash rejects every login.
func NewGate(username, passwordHash string) *Gate {
	return &Gate{username: username, passwordHash: passwordHash}
}

// Enabled reports whether the gate can ever grant a capability.
func (g *Gate) Enabled() bool {
	return g != nil && g.passwordHash != ""
}

// Login verifies the credentials and returns ctx carrying an admin
// capability.
func (g *Gate) Login(ctx context.Context, username, password string) (context.Context, error) {
	if !g.Enabled() {
		return ctx, ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	if !VerifyPassword(g.passwordHash, password) || !userOK {
		return ctx, ErrUnauthorized
	}
	return context.WithValue(ctx, capabilityKey{}, capability{gate: g, username: username}), nil
}

// Authorize implements catalog.Authorizer. It accepts only capabilities
// issued by this gate.
func (g *Gate) Authorize(ctx context.Context) error {
	c, ok := ctx.Value(capabilityKey{}).(capability)
	if !ok || c.gate != g {
		return ErrUnauthorized
	}
	return nil
}

// UsernameFrom returns the admin that logged in, if any.
func UsernameFrom(ctx context.Context) string {
	if c, ok := ctx.Value(capabilityKey{}).(capability); ok {
		return c.username
	}
	return ""
}

package jwtmw

import "context"

// Identity is the authenticated caller. It never carries the password digest.
type Identity struct {
	ID    string
	Name  string
	Email string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

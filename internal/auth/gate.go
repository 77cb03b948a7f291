package auth

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the caller could not be identified.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMissingCredentials is an ErrUnauthenticated for absent headers.
	ErrMissingCredentials = fmt.Errorf("%w: credentials required", ErrUnauthenticated)
	// ErrInvalidCredentials is an ErrUnauthenticated for credentials that do
	// not match an active account. Unknown, inactive and wrong-password all
	// map here.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	// ErrForbidden means the caller is identified but not allowed.
	ErrForbidden = errors.New("forbidden")
)

// Authenticator resolves credentials to a principal. It returns
// ErrInvalidCredentials (and no principal) when they do not verify.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (*Principal, error)
}

// Requirement is a predicate a verified principal must satisfy.
type Requirement func(p *Principal) bool

// AnyPrincipal accepts every verified principal.
func AnyPrincipal(*Principal) bool { return true }

// SuperAdmin accepts editors holding the super-admin flag.
func SuperAdmin(p *Principal) bool { return p.IsSuperAdmin() }

// Gate verifies credentials on every call and then applies Require.
// A role gate uses SuperAdmin; a credential-only gate uses AnyPrincipal.
type Gate struct {
	Authenticator Authenticator
	Require       Requirement
}

// Authorize verifies c and checks the requirement. Errors are
// ErrMissingCredentials, ErrInvalidCredentials, ErrForbidden, or a wrapped
// lookup failure.
func (g Gate) Authorize(ctx context.Context, c Credentials) (*Principal, error) {
	if c.Password == "" {
		return nil, ErrMissingCredentials
	}
	p, err := g.Authenticator.Authenticate(ctx, c)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}
	if err := g.Permit(p); err != nil {
		return p, err
	}
	return p, nil
}

// Permit applies the requirement to an already verified principal.
func (g Gate) Permit(p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if g.Require != nil && !g.Require(p) {
		return ErrForbidden
	}
	return nil
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return p, nil
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"businessCard/models"
)

// Principal kinds.
const (
	KindEditor = "editor"
	KindAdmin  = "admin"
)

// Principal represents the verified caller of one request.
type Principal struct {
	Name   string         // editor username, or "admin" for the shared password
	Kind   string         // KindEditor | KindAdmin
	Editor *models.Editor // nil for KindAdmin
}

// IsSuperAdmin reports whether the principal is an editor holding the
// super-admin flag.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Editor != nil && p.Editor.IsSuperAdmin
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Credential headers.
const (
	HeaderEditorUsername = "X-Editor-Username"
	HeaderEditorPassword = "X-Editor-Password"
	HeaderAdminPassword  = "X-Admin-Password"
)

// Credentials are the raw secrets presented with a request. Username is
// empty for the shared admin password.
type Credentials struct {
	Username string
	Password string
}

// CredentialReader extracts credentials from request headers.
type CredentialReader func(h http.Header) Credentials

// EditorCredentials reads X-Editor-Username / X-Editor-Password.
func EditorCredentials(h http.Header) Credentials {
	return Credentials{
		Username: headerValue(h, HeaderEditorUsername),
		Password: headerValue(h, HeaderEditorPassword),
	}
}

// AdminCredentials reads X-Admin-Password.
func AdminCredentials(h http.Header) Credentials {
	return Credentials{Password: headerValue(h, HeaderAdminPassword)}
}

// headerValue looks a header up by its canonical name, then by the
// lower-cased key for maps built without canonicalization.
func headerValue(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	if vs := h[strings.ToLower(name)]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

package auth

import (
	"context"
	"fmt"

	"businessCard/models"
)

// EditorLookup is the subset of the editor repository used for
// authentication.
type EditorLookup interface {
	// GetActiveByUsername returns nil, nil when no active editor has username.
	GetActiveByUsername(ctx context.Context, username string) (*models.Editor, error)
}

// AdminSettingLookup is the subset of the admin settings repository used
// for authentication.
type AdminSettingLookup interface {
	// Get returns nil, nil when the singleton row does not exist.
	Get(ctx context.Context) (*models.AdminSetting, error)
}

// EditorAuthenticator verifies per-editor username/password pairs against
// active editors.
type EditorAuthenticator struct {
	Editors EditorLookup
	Hasher  Hasher
}

// Authenticate satisfies [Authenticator].
func (a EditorAuthenticator) Authenticate(ctx context.Context, c Credentials) (*Principal, error) {
	if c.Username == "" || c.Password == "" {
		return nil, ErrMissingCredentials
	}
	e, err := a.Editors.GetActiveByUsername(ctx, c.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup editor: %w", err)
	}
	if e == nil || !a.Hasher.Verify(c.Password, e.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &Principal{Name: e.Username, Kind: KindEditor, Editor: e}, nil
}

// AdminPasswordAuthenticator verifies the single shared admin password.
type AdminPasswordAuthenticator struct {
	Settings AdminSettingLookup
	Hasher   Hasher
}

// Authenticate satisfies [Authenticator]. A missing settings row fails
// verification like a wrong password.
func (a AdminPasswordAuthenticator) Authenticate(ctx context.Context, c Credentials) (*Principal, error) {
	if c.Password == "" {
		return nil, ErrMissingCredentials
	}
	s, err := a.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup admin settings: %w", err)
	}
	if s == nil || !a.Hasher.Verify(c.Password, s.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &Principal{Name: KindAdmin, Kind: KindAdmin}, nil
}

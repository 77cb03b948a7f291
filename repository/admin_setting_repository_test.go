package repository

import (
	"context"
	"testing"

	"businessCard/internal/testutil"
	"businessCard/models"
)

func TestAdminSettingRepository(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "adminsettings")
	repo := NewAdminSettingRepository(d)
	ctx := context.Background()

	s, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get before set: %v", err)
	}
	if s != nil {
		t.Fatalf("expected no admin setting before set, got %+v", s)
	}

	if err := repo.SetPasswordHash(ctx, "first"); err != nil {
		t.Fatalf("set first: %v", err)
	}
	if err := repo.SetPasswordHash(ctx, "second"); err != nil {
		t.Fatalf("set second: %v", err)
	}

	s, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	if s == nil {
		t.Fatalf("expected admin setting after set")
	}
	if s.ID != models.AdminSettingID {
		t.Fatalf("expected id %d, got %d", models.AdminSettingID, s.ID)
	}
	if s.PasswordHash != "second" {
		t.Fatalf("expected latest hash to win, got %q", s.PasswordHash)
	}
	if n := testutil.CountRows(t, d, "admin_settings"); n != 1 {
		t.Fatalf("expected singleton row, got %d rows", n)
	}
}

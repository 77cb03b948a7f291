package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"businessCard/internal/db"
	"businessCard/models"
)

type AdminSettingRepository struct {
	db *db.DB
}

func NewAdminSettingRepository(d *db.DB) *AdminSettingRepository {
	return &AdminSettingRepository{db: d}
}

// Get returns the singleton row, or nil if it was never set.
func (r *AdminSettingRepository) Get(ctx context.Context) (*models.AdminSetting, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.AdminSetting
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT id, password_hash, updated_at FROM admin_settings WHERE id = ?`), models.AdminSettingID).
		Scan(&s.ID, &s.PasswordHash, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// SetPasswordHash creates or replaces the shared admin password hash.
func (r *AdminSettingRepository) SetPasswordHash(ctx context.Context, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO admin_settings (id, password_hash, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE
		SET password_hash = excluded.password_hash, updated_at = CURRENT_TIMESTAMP`),
		models.AdminSettingID, passwordHash)
	return err
}

package models

import "time"

// AdminSettingID is the primary key of the only admin_settings row.
const AdminSettingID = 1

// AdminSetting holds the shared admin password used by the single-password
// contacts variant.
type AdminSetting struct {
	ID           int64     `db:"id" json:"id"`
	PasswordHash string    `db:"password_hash" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

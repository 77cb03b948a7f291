package models

import "time"

// Editor is an account allowed to manage contacts and, when IsSuperAdmin is
// set, other editor accounts. It maps to the `editors` table.
// PasswordHash never leaves the process: it is excluded from JSON.
type Editor struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	IsSuperAdmin bool       `db:"is_super_admin" json:"is_super_admin"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    *time.Time `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `db:"updated_at" json:"-"`
}

// NewEditor describes an editor to be created through the API. Such editors
// are always active and never super-admins.
type NewEditor struct {
	Username     string
	PasswordHash string
	FullName     string
}

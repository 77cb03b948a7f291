package models

import "time"

// Contact is one card in the public directory, ordered by DisplayOrder
// ascending (ties by ID). It maps to the `contacts` table.
type Contact struct {
	ID               int64      `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	TelegramUsername string     `db:"telegram_username" json:"telegram_username"`
	Position         string     `db:"position" json:"position"`
	AvatarURL        string     `db:"avatar_url" json:"avatar_url"`
	DisplayOrder     int        `db:"display_order" json:"display_order"`
	CreatedAt        *time.Time `db:"created_at" json:"-"`
	UpdatedAt        *time.Time `db:"updated_at" json:"-"`
}

// ContactFields are the mutable columns of a contact. Updates write all of
// them; a zero value overwrites whatever was stored.
type ContactFields struct {
	Name             string
	TelegramUsername string
	Position         string
	AvatarURL        string
	DisplayOrder     int
}

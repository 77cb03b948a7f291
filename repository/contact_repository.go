package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"businessCard/internal/db"
	"businessCard/models"
)

type ContactRepository struct {
	db *db.DB
}

func NewContactRepository(d *db.DB) *ContactRepository {
	return &ContactRepository{db: d}
}

const contactColumns = `id, name, telegram_username, position, avatar_url, display_order`

func scanContact(row interface{ Scan(...any) error }, c *models.Contact) error {
	return row.Scan(&c.ID, &c.Name, &c.TelegramUsername, &c.Position, &c.AvatarURL, &c.DisplayOrder)
}

// List returns all contacts by display_order ascending; equal orders keep
// insertion (id) order.
func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the contact with id, or nil if there is none. The handlers
// never read a single contact; tests use it to check stored rows.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Contact
	err := scanContact(r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`), id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, f models.ContactFields) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Contact
	err := scanContact(r.db.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO contacts (name, telegram_username, position, avatar_url, display_order)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+contactColumns),
		f.Name, f.TelegramUsername, f.Position, f.AvatarURL, f.DisplayOrder,
	), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update overwrites every mutable column of contact id with f. It returns
// nil, nil when no such contact exists.
func (r *ContactRepository) Update(ctx context.Context, id int64, f models.ContactFields) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Contact
	err := scanContact(r.db.QueryRowContext(ctx, r.db.Rebind(`
		UPDATE contacts
		SET name = ?, telegram_username = ?, position = ?,
		    avatar_url = ?, display_order = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+contactColumns),
		f.Name, f.TelegramUsername, f.Position, f.AvatarURL, f.DisplayOrder, id,
	), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Delete hard-deletes contact id and reports whether a row was removed.
func (r *ContactRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"businessCard/internal/db"
	"businessCard/models"
)

type EditorRepository struct {
	db *db.DB
}

func NewEditorRepository(d *db.DB) *EditorRepository {
	return &EditorRepository{db: d}
}

// Create inserts an active, non-super-admin editor and returns it without
// timestamps. A taken username yields ErrAlreadyExists.
func (r *EditorRepository) Create(ctx context.Context, e models.NewEditor) (*models.Editor, error) {
	return r.insert(ctx, e, false)
}

// CreateSuperAdmin inserts an active super-admin. Only the bootstrap command
// calls it; the HTTP API has no way to grant the flag.
func (r *EditorRepository) CreateSuperAdmin(ctx context.Context, e models.NewEditor) (*models.Editor, error) {
	return r.insert(ctx, e, true)
}

func (r *EditorRepository) insert(ctx context.Context, e models.NewEditor, superAdmin bool) (*models.Editor, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out models.Editor
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO editors (username, password_hash, full_name, is_super_admin, is_active)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, username, full_name, is_super_admin, is_active`),
		e.Username, e.PasswordHash, e.FullName, superAdmin, true,
	).Scan(&out.ID, &out.Username, &out.FullName, &out.IsSuperAdmin, &out.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

// GetActiveByUsername returns the active editor with username, including its
// password hash, or nil if there is none.
func (r *EditorRepository) GetActiveByUsername(ctx context.Context, username string) (*models.Editor, error) {
	return r.getByUsername(ctx, `
		SELECT id, username, password_hash, full_name, is_super_admin, is_active
		FROM editors
		WHERE username = ? AND is_active = TRUE`, username)
}

// GetByUsername is GetActiveByUsername without the is_active filter.
func (r *EditorRepository) GetByUsername(ctx context.Context, username string) (*models.Editor, error) {
	return r.getByUsername(ctx, `
		SELECT id, username, password_hash, full_name, is_super_admin, is_active
		FROM editors
		WHERE username = ?`, username)
}

func (r *EditorRepository) getByUsername(ctx context.Context, query, username string) (*models.Editor, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var e models.Editor
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), username).
		Scan(&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.IsSuperAdmin, &e.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// List returns every editor, newest first, without password hashes.
func (r *EditorRepository) List(ctx context.Context) ([]models.Editor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, full_name, is_super_admin, is_active, created_at
		FROM editors
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Editor{}
	for rows.Next() {
		var e models.Editor
		if err := rows.Scan(&e.ID, &e.Username, &e.FullName, &e.IsSuperAdmin, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePassword stores a new hash for username and reports whether a row
// was changed.
func (r *EditorRepository) UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE editors
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE username = ?`), passwordHash, username)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteNonSuperAdmin hard-deletes the editor with id unless it is a
// super-admin. It reports whether a row was removed; protected or missing
// rows are not errors.
func (r *EditorRepository) DeleteNonSuperAdmin(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM editors WHERE id = ? AND is_super_admin = FALSE`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

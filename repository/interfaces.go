package repository

import (
	"context"

	"businessCard/models"
)

// EditorRepositoryI defines operations on Editor entities.
type EditorRepositoryI interface {
	Create(ctx context.Context, e models.NewEditor) (*models.Editor, error)
	CreateSuperAdmin(ctx context.Context, e models.NewEditor) (*models.Editor, error)
	GetActiveByUsername(ctx context.Context, username string) (*models.Editor, error)
	GetByUsername(ctx context.Context, username string) (*models.Editor, error)
	List(ctx context.Context) ([]models.Editor, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error)
	DeleteNonSuperAdmin(ctx context.Context, id int64) (bool, error)
}

// ContactRepositoryI defines operations on Contact entities.
type ContactRepositoryI interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, f models.ContactFields) (*models.Contact, error)
	Update(ctx context.Context, id int64, f models.ContactFields) (*models.Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AdminSettingRepositoryI defines operations on the AdminSetting singleton.
type AdminSettingRepositoryI interface {
	Get(ctx context.Context) (*models.AdminSetting, error)
	SetPasswordHash(ctx context.Context, passwordHash string) error
}

var (
	_ EditorRepositoryI       = (*EditorRepository)(nil)
	_ ContactRepositoryI      = (*ContactRepository)(nil)
	_ AdminSettingRepositoryI = (*AdminSettingRepository)(nil)
)

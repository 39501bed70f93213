package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	autherrors "go-leaveflow/internal/auth/errors"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Identity, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, identity *Identity) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(identity).Error)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &identity, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &identity, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&Identity{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return autherrors.ErrIdentityNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Identity{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return autherrors.ErrIdentityNotFound
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrIdentityNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}

package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	profileerrors "go-leaveflow/internal/profile/errors"
	"go-leaveflow/internal/shared/dbtx"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindAll(ctx context.Context, role string) ([]Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindRoleByUserID(ctx context.Context, userID string) (*string, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, fields map[string]any) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return mapRepositoryError(r.conn(ctx).Create(p).Error)
}

func (r *repository) FindAll(ctx context.Context, role string) ([]Profile, error) {
	q := r.conn(ctx).Order("created_at DESC")
	switch role {
	case "":
	case RoleFilterNone:
		q = q.Where("role IS NULL")
	default:
		q = q.Where("role = ?", role)
	}

	var profiles []Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).
		Clauses(lockingClause()).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) FindRoleByUserID(ctx context.Context, userID string) (*string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, profileerrors.ErrInvalidProfileID
	}

	var p Profile
	err = r.conn(ctx).Select("id", "role").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p.Role, nil
}

func (r *repository) UpdateDetails(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.conn(ctx).Model(&Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return profileerrors.ErrProfileNotFound
	}
	return nil
}

func (r *repository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	res := r.conn(ctx).Model(&Profile{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return profileerrors.ErrProfileNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Profile{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return profileerrors.ErrProfileNotFound
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return conflictFor(pgErr.ConstraintName)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		return conflictFor(msg)
	}
	return err
}

func conflictFor(constraint string) error {
	if strings.Contains(constraint, "national_id") {
		return profileerrors.ErrNationalIDAlreadyExists
	}
	return profileerrors.ErrEmailAlreadyExists
}

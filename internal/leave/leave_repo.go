package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/shared/dbtx"
)

type ListQuery struct {
	NationalID string
	Status     string
	Offset     int
	Limit      int
}

// Decision is the column set written when a pending application is decided.
type Decision struct {
	Status          Status
	DecidedBy       uuid.UUID
	DecidedAt       time.Time
	RejectionReason *string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, q ListQuery) ([]Leave, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, error)
	UpdatePending(ctx context.Context, l *Leave) error
	DeletePending(ctx context.Context, id uuid.UUID) error
	Decide(ctx context.Context, id uuid.UUID, d Decision) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, q ListQuery) ([]Leave, int64, error) {
	base := r.conn(ctx).Model(&Leave{})
	if q.NationalID != "" {
		base = base.Where("applicant_national_id = ?", q.NationalID)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	query := base.Session(&gorm.Session{})

	var total int64
	if q.Limit > 0 {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	var leaves []Leave
	if err := query.Order("submitted_date DESC, created_at DESC").Find(&leaves).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit <= 0 {
		total = int64(len(leaves))
	}
	return leaves, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Leave, error) {
	var l Leave
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return &l, nil
}

// UpdatePending rewrites the editable columns only while the row is still
// pending. Status and submitted date are never touched here.
func (r *repository) UpdatePending(ctx context.Context, l *Leave) error {
	res := r.conn(ctx).Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, StatusPending.String()).
		Updates(map[string]any{
			"applicant_id":          l.ApplicantID,
			"applicant_name":        l.ApplicantName,
			"applicant_address":     l.ApplicantAddress,
			"applicant_age":         l.ApplicantAge,
			"applicant_national_id": l.ApplicantNationalID,
			"applicant_gender":      l.ApplicantGender,
			"applicant_status":      l.ApplicantStatus,
			"leave_type":            l.LeaveType,
			"start_date":            l.StartDate,
			"end_date":              l.EndDate,
			"reason":                l.Reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrLeaveNotEditable
	}
	return nil
}

func (r *repository) DeletePending(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).
		Where("id = ? AND status = ?", id, StatusPending.String()).
		Delete(&Leave{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrLeaveNotEditable
	}
	return nil
}

// Decide applies a decision with a conditional update so a record that was
// decided concurrently is reported instead of overwritten.
func (r *repository) Decide(ctx context.Context, id uuid.UUID, d Decision) error {
	res := r.conn(ctx).Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending.String()).
		Updates(map[string]any{
			"status":           d.Status.String(),
			"decided_by":       d.DecidedBy,
			"decided_at":       d.DecidedAt,
			"rejection_reason": d.RejectionReason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrLeaveAlreadyDecided
	}
	return nil
}

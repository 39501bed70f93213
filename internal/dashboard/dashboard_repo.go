package dashboard

import (
	"context"

	"gorm.io/gorm"

	"go-leaveflow/internal/employee"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/profile"
)

// GroupCount is one row of a GROUP BY count. Key is nil for NULL columns.
type GroupCount struct {
	Key   *string
	Count int64
}

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountProfilesByRole(ctx context.Context) ([]GroupCount, error)
	CountEmployeesByGender(ctx context.Context) ([]GroupCount, error)
	CountEmployeesByStatus(ctx context.Context) ([]GroupCount, error)
	CountLeavesByStatus(ctx context.Context) ([]GroupCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) groupCount(ctx context.Context, model any, column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountProfilesByRole(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &profile.Profile{}, "role")
}

func (r *repository) CountEmployeesByGender(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &employee.Employee{}, "gender")
}

func (r *repository) CountEmployeesByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &employee.Employee{}, "status")
}

func (r *repository) CountLeavesByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &leave.Leave{}, "status")
}

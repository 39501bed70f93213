package dashboard

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-leaveflow/internal/shared/contextutil"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetStats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	var roles, genders, statuses, leaves []GroupCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { roles, err = s.repo.CountProfilesByRole(gctx); return })
	g.Go(func() (err error) { genders, err = s.repo.CountEmployeesByGender(gctx); return })
	g.Go(func() (err error) { statuses, err = s.repo.CountEmployeesByStatus(gctx); return })
	g.Go(func() (err error) { leaves, err = s.repo.CountLeavesByStatus(gctx); return })
	if err := g.Wait(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load dashboard stats failed", zap.Error(err))
		return StatsResponse{}, err
	}

	profileTotal, roleBuckets := distribution(roles)
	employeeTotal, genderBuckets := distribution(genders)
	_, statusBuckets := distribution(statuses)
	leaveTotal, leaveBuckets := distribution(leaves)

	return StatsResponse{
		Profiles:  ProfileStats{Total: profileTotal, Roles: roleBuckets},
		Employees: EmployeeStats{Total: employeeTotal, Gender: genderBuckets, MaritalStatus: statusBuckets},
		Leaves:    LeaveStats{Total: leaveTotal, ByStatus: leaveBuckets},
	}, nil
}

// distribution folds NULL keys into NoneKey and computes each bucket's share
// rounded to one decimal.
func distribution(rows []GroupCount) (int64, []Bucket) {
	var total int64
	order := make([]string, 0, len(rows))
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := NoneKey
		if row.Key != nil && *row.Key != "" {
			key = *row.Key
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key] += row.Count
		total += row.Count
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{
			Key:        key,
			Count:      counts[key],
			Percentage: percentage(counts[key], total),
		})
	}
	return total, buckets
}

func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

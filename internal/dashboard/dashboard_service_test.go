package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-leaveflow/internal/dashboard"
	dashboardMock "go-leaveflow/internal/dashboard/mock"
)

func key(s string) *string { return &s }

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("distributions with one decimal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo)

		repo.EXPECT().CountProfilesByRole(gomock.Any()).Return([]dashboard.GroupCount{
			{Key: key("admin"), Count: 1},
			{Key: key("user"), Count: 4},
			{Key: nil, Count: 1},
		}, nil)
		repo.EXPECT().CountEmployeesByGender(gomock.Any()).Return([]dashboard.GroupCount{
			{Key: key("female"), Count: 2},
			{Key: key("male"), Count: 1},
		}, nil)
		repo.EXPECT().CountEmployeesByStatus(gomock.Any()).Return([]dashboard.GroupCount{
			{Key: key("married"), Count: 3},
		}, nil)
		repo.EXPECT().CountLeavesByStatus(gomock.Any()).Return([]dashboard.GroupCount{
			{Key: key("APPROVED"), Count: 2},
			{Key: key("PENDING"), Count: 5},
		}, nil)

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 6, stats.Profiles.Total)
		assert.Equal(t, []dashboard.Bucket{
			{Key: "admin", Count: 1, Percentage: 16.7},
			{Key: "user", Count: 4, Percentage: 66.7},
			{Key: "none", Count: 1, Percentage: 16.7},
		}, stats.Profiles.Roles)

		assert.EqualValues(t, 3, stats.Employees.Total)
		assert.Equal(t, 66.7, stats.Employees.Gender[0].Percentage)
		assert.Equal(t, 33.3, stats.Employees.Gender[1].Percentage)
		assert.Equal(t, 100.0, stats.Employees.MaritalStatus[0].Percentage)

		assert.EqualValues(t, 7, stats.Leaves.Total)
		assert.Equal(t, 71.4, stats.Leaves.ByStatus[1].Percentage)
	})

	t.Run("empty tables", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo)

		repo.EXPECT().CountProfilesByRole(gomock.Any()).Return(nil, nil)
		repo.EXPECT().CountEmployeesByGender(gomock.Any()).Return(nil, nil)
		repo.EXPECT().CountEmployeesByStatus(gomock.Any()).Return(nil, nil)
		repo.EXPECT().CountLeavesByStatus(gomock.Any()).Return(nil, nil)

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Profiles.Total)
		assert.NotNil(t, stats.Profiles.Roles)
		assert.Empty(t, stats.Leaves.ByStatus)
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo)
		boom := errors.New("db down")

		repo.EXPECT().CountProfilesByRole(gomock.Any()).Return(nil, boom)
		repo.EXPECT().CountEmployeesByGender(gomock.Any()).Return(nil, nil).AnyTimes()
		repo.EXPECT().CountEmployeesByStatus(gomock.Any()).Return(nil, nil).AnyTimes()
		repo.EXPECT().CountLeavesByStatus(gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := svc.GetStats(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

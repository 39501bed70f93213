package profile_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/events"
	"go-leaveflow/internal/messaging/kafka"
	kafkaMock "go-leaveflow/internal/messaging/kafka/mock"
	"go-leaveflow/internal/profile"
	profileerrors "go-leaveflow/internal/profile/errors"
	profileMock "go-leaveflow/internal/profile/mock"
)

type serviceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    profile.Service
	repo       *profileMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
	identities *profileMock.MockIdentityProvisioner
	sessions   *profileMock.MockSessionRevoker
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       profileMock.NewMockRepository(ctrl),
		outbox:     kafkaMock.NewMockOutboxRepository(ctrl),
		identities: profileMock.NewMockIdentityProvisioner(ctrl),
		sessions:   profileMock.NewMockSessionRevoker(ctrl),
	}
	deps.service = profile.NewService(db, deps.repo, deps.outbox, deps.identities, deps.sessions, 2*time.Second)
	return deps
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(s string) *string { return &s }

func TestProfileService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()
	newID := uuid.NewString()
	req := profile.CreateProfileRequest{Email: "jane@example.com", FullName: " Jane ", Role: "user"}

	t.Run("success returns temporary password", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.identities.EXPECT().ProvisionIdentity(ctx, req.Email).
			Return(auth.ProvisionedIdentity{ID: newID, Email: req.Email, TemporaryPassword: "tmp-pass"}, nil)

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *profile.Profile) error {
				assert.Equal(t, newID, p.ID.String())
				assert.Equal(t, "Jane", *p.FullName)
				assert.Equal(t, "user", *p.Role)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.ProfileCreated, e.EventType)
				assert.Equal(t, events.IdentityProfileTopic, e.Topic)
				assert.Equal(t, newID, e.AggregateID)
				return nil
			})

		res, err := deps.service.Create(ctx, actorID, req)
		require.NoError(t, err)
		assert.Equal(t, "tmp-pass", res.TemporaryPassword)
		assert.Equal(t, newID, res.Profile.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("profile insert failure removes identity", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.identities.EXPECT().ProvisionIdentity(ctx, req.Email).
			Return(auth.ProvisionedIdentity{ID: newID, Email: req.Email}, nil)
		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))
		deps.identities.EXPECT().RemoveIdentity(ctx, newID).Return(nil)

		_, err := deps.service.Create(ctx, actorID, req)
		assert.ErrorIs(t, err, profileerrors.ErrProvisioningFailed)
	})

	t.Run("duplicate national id keeps conflict error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.identities.EXPECT().ProvisionIdentity(ctx, req.Email).
			Return(auth.ProvisionedIdentity{ID: newID, Email: req.Email}, nil)
		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(profileerrors.ErrNationalIDAlreadyExists)
		deps.identities.EXPECT().RemoveIdentity(ctx, newID).Return(nil)

		_, err := deps.service.Create(ctx, actorID, req)
		assert.ErrorIs(t, err, profileerrors.ErrNationalIDAlreadyExists)
	})

	t.Run("invalid role never provisions", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, profile.CreateProfileRequest{Email: "x@example.com", Role: "root"})
		assert.ErrorIs(t, err, profileerrors.ErrInvalidRole)
	})
}

func TestProfileService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin demoting self schedules sign out", func(t *testing.T) {
		deps := setupServiceTest(t)
		self := uuid.New()

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, self).
			Return(&profile.Profile{ID: self, Email: "admin@example.com", Role: strPtr("admin")}, nil)
		deps.repo.EXPECT().UpdateRole(ctx, self, "user").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sessions.EXPECT().RevokeUserAfter(ctx, self.String(), 2*time.Second).
			Return(time.Now().Add(2*time.Second), nil)

		res, err := deps.service.UpdateRole(ctx, self.String(), self.String(), profile.UpdateRoleRequest{Role: "user"})
		require.NoError(t, err)
		assert.True(t, res.SelfDemotion)
		assert.InDelta(t, 2000, res.SignedOutInMs, 200)
		assert.Equal(t, "user", *res.Profile.Role)
		assert.NotNil(t, res.SignOutAt)
	})

	t.Run("changing another profile does not revoke", func(t *testing.T) {
		deps := setupServiceTest(t)
		actor := uuid.NewString()
		target := uuid.New()

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, target).
			Return(&profile.Profile{ID: target, Email: "u@example.com"}, nil)
		deps.repo.EXPECT().UpdateRole(ctx, target, "admin").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		res, err := deps.service.UpdateRole(ctx, actor, target.String(), profile.UpdateRoleRequest{Role: "admin"})
		require.NoError(t, err)
		assert.False(t, res.SelfDemotion)
		assert.Zero(t, res.SignedOutInMs)
	})

	t.Run("unknown profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := uuid.New()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, target).Return(nil, profileerrors.ErrProfileNotFound)

		_, err := deps.service.UpdateRole(ctx, uuid.NewString(), target.String(), profile.UpdateRoleRequest{Role: "user"})
		assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.UpdateRole(ctx, uuid.NewString(), uuid.NewString(), profile.UpdateRoleRequest{Role: "owner"})
		assert.ErrorIs(t, err, profileerrors.ErrInvalidRole)
	})
}

func TestProfileService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes identity before profile and revokes sessions", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, target).
			Return(&profile.Profile{ID: target, Email: "u@example.com", Role: strPtr("user")}, nil)
		removed := deps.identities.EXPECT().RemoveIdentity(ctx, target.String()).Return(nil)
		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, target).Return(nil).After(removed)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.ProfileDeleted, e.EventType)
				return nil
			})
		deps.sessions.EXPECT().RevokeUserAfter(ctx, target.String(), time.Duration(0)).Return(time.Now(), nil)

		err := deps.service.Delete(ctx, uuid.NewString(), target.String())
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("profile failure after identity removal is reported", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := uuid.New()
		dbErr := errors.New("db down")

		deps.repo.EXPECT().FindByID(ctx, target).Return(&profile.Profile{ID: target}, nil)
		deps.identities.EXPECT().RemoveIdentity(ctx, target.String()).Return(nil)
		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, target).Return(dbErr)

		err := deps.service.Delete(ctx, uuid.NewString(), target.String())
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		deps := setupServiceTest(t)
		self := uuid.NewString()

		err := deps.service.Delete(ctx, self, self)
		assert.ErrorIs(t, err, profileerrors.ErrCannotDeleteSelf)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.Delete(ctx, uuid.NewString(), "nope")
		assert.ErrorIs(t, err, profileerrors.ErrInvalidProfileID)
	})
}

func TestProfileService_UpdateSelf(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	self := uuid.New()

	deps.repo.EXPECT().UpdateDetails(ctx, self, map[string]any{"full_name": "New Name"}).Return(nil)
	deps.repo.EXPECT().FindByID(ctx, self).
		Return(&profile.Profile{ID: self, FullName: strPtr("New Name")}, nil)

	res, err := deps.service.UpdateSelf(ctx, self.String(), profile.UpdateSelfRequest{FullName: strPtr(" New Name ")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", *res.FullName)
}

func TestProfileService_CreateForIdentity(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	id := uuid.NewString()

	expectTx(deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Nil(t, p.Role)
			assert.Equal(t, "new@example.com", p.Email)
			return nil
		})
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	err := deps.service.CreateForIdentity(ctx, auth.ProfileSeed{UserID: id, Email: "new@example.com"})
	assert.NoError(t, err)
}

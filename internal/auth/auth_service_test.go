package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"go-leaveflow/internal/auth"
	autherrors "go-leaveflow/internal/auth/errors"
	authMock "go-leaveflow/internal/auth/mock"
	"go-leaveflow/internal/session"
	sessionMock "go-leaveflow/internal/session/mock"
)

type authDeps struct {
	repo     *authMock.MockRepository
	store    *sessionMock.MockStore
	profiles *authMock.MockProfileCreator
	tokens   *session.TokenManager
}

func newAuthService(t *testing.T, opts auth.Options) (auth.Service, authDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := authDeps{
		repo:     authMock.NewMockRepository(ctrl),
		store:    sessionMock.NewMockStore(ctrl),
		profiles: authMock.NewMockProfileCreator(ctrl),
		tokens:   session.NewTokenManager("test-secret", time.Hour),
	}
	svc := auth.NewService(deps.repo, deps.store, deps.tokens, deps.profiles, opts)
	return svc, deps
}

func TestService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates identity and profile with default role", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{SignupDefaultRole: "user"})

		var created *auth.Identity
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, i *auth.Identity) error {
				created = i
				return nil
			})
		deps.profiles.EXPECT().CreateForIdentity(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, seed auth.ProfileSeed) error {
				assert.Equal(t, created.ID.String(), seed.UserID)
				assert.Equal(t, "new@example.com", seed.Email)
				require.NotNil(t, seed.Role)
				assert.Equal(t, "user", *seed.Role)
				require.NotNil(t, seed.FullName)
				assert.Equal(t, "New Person", *seed.FullName)
				return nil
			})

		res, err := svc.SignUp(ctx, auth.SignUpRequest{Email: " New@Example.com ", Password: "secret1", FullName: "New Person"})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", res.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))
	})

	t.Run("empty default role leaves profile without role", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{})

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.profiles.EXPECT().CreateForIdentity(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, seed auth.ProfileSeed) error {
				assert.Nil(t, seed.Role)
				assert.Nil(t, seed.FullName)
				return nil
			})

		_, err := svc.SignUp(ctx, auth.SignUpRequest{Email: "a@example.com", Password: "secret1"})
		require.NoError(t, err)
	})

	t.Run("profile failure removes the identity", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{SignupDefaultRole: "user"})

		var id uuid.UUID
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, i *auth.Identity) error {
				id = i.ID
				return nil
			})
		deps.profiles.EXPECT().CreateForIdentity(ctx, gomock.Any()).Return(errors.New("insert failed"))
		deps.repo.EXPECT().Delete(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, got uuid.UUID) error {
				assert.Equal(t, id, got)
				return nil
			})

		_, err := svc.SignUp(ctx, auth.SignUpRequest{Email: "a@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrProfileSetupFailed)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{})
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(autherrors.ErrEmailAlreadyRegistered)

		_, err := svc.SignUp(ctx, auth.SignUpRequest{Email: "a@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	identity := &auth.Identity{ID: uuid.New(), Email: "a@example.com", PasswordHash: string(hash)}

	t.Run("success issues token bound to session", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{SessionTTL: time.Hour})

		deps.repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(identity, nil)
		var stored session.Session
		deps.store.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, s session.Session) error {
				stored = s
				return nil
			})

		res, err := svc.SignIn(ctx, auth.SignInRequest{Email: "A@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, identity.ID.String(), res.User.ID)

		claims, err := deps.tokens.Parse(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.ID)
		assert.Equal(t, identity.ID.String(), claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{})
		deps.repo.EXPECT().GetByEmail(ctx, "a@example.com").Return(identity, nil)

		_, err := svc.SignIn(ctx, auth.SignInRequest{Email: "a@example.com", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, deps := newAuthService(t, auth.Options{})
		deps.repo.EXPECT().GetByEmail(ctx, "x@example.com").Return(nil, autherrors.ErrIdentityNotFound)

		_, err := svc.SignIn(ctx, auth.SignInRequest{Email: "x@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, deps := newAuthService(t, auth.Options{})

	deps.store.EXPECT().Active(ctx, "sid-1").Return(session.Session{ID: "sid-1", UserID: "u-1"}, nil)
	res, err := svc.Refresh(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.User.ID)

	deps.store.EXPECT().Active(ctx, "sid-2").Return(session.Session{}, errors.New("revoked"))
	_, err = svc.Refresh(ctx, "sid-2")
	assert.Error(t, err)
}

func TestService_ProvisionIdentity(t *testing.T) {
	ctx := context.Background()
	svc, deps := newAuthService(t, auth.Options{TempPasswordLength: 12})

	var created *auth.Identity
	deps.repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, i *auth.Identity) error {
			created = i
			return nil
		})

	res, err := svc.ProvisionIdentity(ctx, "Staff@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", res.Email)
	assert.Len(t, res.TemporaryPassword, 12)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(res.TemporaryPassword)))
}

func TestService_RemoveIdentity(t *testing.T) {
	ctx := context.Background()
	svc, deps := newAuthService(t, auth.Options{})

	assert.ErrorIs(t, svc.RemoveIdentity(ctx, "not-a-uuid"), autherrors.ErrInvalidUserID)

	id := uuid.New()
	deps.repo.EXPECT().Delete(ctx, id).Return(nil)
	assert.NoError(t, svc.RemoveIdentity(ctx, id.String()))
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, deps := newAuthService(t, auth.Options{})

	id := uuid.New()
	deps.repo.EXPECT().UpdatePassword(ctx, id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass")))
			return nil
		})
	assert.NoError(t, svc.ChangePassword(ctx, id.String(), "newpass"))
}

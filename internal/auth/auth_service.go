package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-leaveflow/internal/auth/errors"
	"go-leaveflow/internal/session"
	"go-leaveflow/internal/shared/contextutil"
)

// ProfileCreator mirrors a new identity onto a profile row.
type ProfileCreator interface {
	CreateForIdentity(ctx context.Context, seed ProfileSeed) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (IdentityResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (SignInResult, error)
	SignOut(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, sessionID string) (SignInResult, error)
	ChangePassword(ctx context.Context, userID string, password string) error
	ProvisionIdentity(ctx context.Context, email string) (ProvisionedIdentity, error)
	RemoveIdentity(ctx context.Context, userID string) error
}

type Options struct {
	SessionTTL         time.Duration
	SignupDefaultRole  string
	TempPasswordLength int
}

type service struct {
	repo     Repository
	sessions session.Store
	tokens   *session.TokenManager
	profiles ProfileCreator
	opts     Options
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	sessions session.Store,
	tokens *session.TokenManager,
	profiles ProfileCreator,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	if opts.TempPasswordLength <= 0 {
		opts.TempPasswordLength = 16
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		profiles: profiles,
		opts:     opts,
		now:      time.Now,
		logger:   l,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (IdentityResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := normalizeEmail(req.Email)

	identity, err := s.createIdentity(ctx, email, req.Password)
	if err != nil {
		return IdentityResponse{}, err
	}

	seed := ProfileSeed{UserID: identity.ID.String(), Email: email}
	if name := strings.TrimSpace(req.FullName); name != "" {
		seed.FullName = &name
	}
	if s.opts.SignupDefaultRole != "" {
		role := s.opts.SignupDefaultRole
		seed.Role = &role
	}

	if err := s.profiles.CreateForIdentity(ctx, seed); err != nil {
		log.Error("profile creation failed, removing identity",
			zap.String("user_id", identity.ID.String()),
			zap.Error(err),
		)
		if delErr := s.repo.Delete(ctx, identity.ID); delErr != nil {
			log.Error("compensating identity delete failed",
				zap.String("user_id", identity.ID.String()),
				zap.Error(delErr),
			)
		}
		return IdentityResponse{}, autherrors.ErrProfileSetupFailed.WithCause(err)
	}

	log.Info("identity signed up", zap.String("user_id", identity.ID.String()))
	return IdentityResponse{ID: identity.ID.String(), Email: identity.Email}, nil
}

func (s *service) createIdentity(ctx context.Context, email, password string) (*Identity, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity := &Identity{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (SignInResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	identity, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, autherrors.ErrIdentityNotFound) {
			log.Error("load identity failed", zap.Error(err))
			return SignInResult{}, err
		}
		return SignInResult{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug("password mismatch", zap.String("user_id", identity.ID.String()))
		return SignInResult{}, autherrors.ErrInvalidCredentials
	}

	now := s.now()
	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    identity.ID.String(),
		Email:     identity.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		log.Error("create session failed", zap.Error(err))
		return SignInResult{}, err
	}

	return s.issue(sess)
}

func (s *service) issue(sess session.Session) (SignInResult, error) {
	token, expiresAt, err := s.tokens.Issue(sess)
	if err != nil {
		return SignInResult{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}
	return SignInResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        IdentityResponse{ID: sess.UserID, Email: sess.Email},
	}, nil
}

func (s *service) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("delete session failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Refresh issues a new access token for a session that is still active.
func (s *service) Refresh(ctx context.Context, sessionID string) (SignInResult, error) {
	sess, err := s.sessions.Active(ctx, sessionID)
	if err != nil {
		return SignInResult{}, err
	}
	return s.issue(sess)
}

func (s *service) ChangePassword(ctx context.Context, userID string, password string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hashed))
}

func (s *service) ProvisionIdentity(ctx context.Context, email string) (ProvisionedIdentity, error) {
	temp, err := temporaryPassword(s.opts.TempPasswordLength)
	if err != nil {
		return ProvisionedIdentity{}, err
	}

	identity, err := s.createIdentity(ctx, normalizeEmail(email), temp)
	if err != nil {
		return ProvisionedIdentity{}, err
	}

	return ProvisionedIdentity{
		ID:                identity.ID.String(),
		Email:             identity.Email,
		TemporaryPassword: temp,
	}, nil
}

func (s *service) RemoveIdentity(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}
	return s.repo.Delete(ctx, id)
}

func temporaryPassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}

package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/events"
	"go-leaveflow/internal/messaging/kafka"
	profileerrors "go-leaveflow/internal/profile/errors"
	"go-leaveflow/internal/shared/contextutil"
)

// IdentityProvisioner owns the credential side of a profile.
type IdentityProvisioner interface {
	ProvisionIdentity(ctx context.Context, email string) (auth.ProvisionedIdentity, error)
	RemoveIdentity(ctx context.Context, userID string) error
}

type SessionRevoker interface {
	RevokeUserAfter(ctx context.Context, userID string, delay time.Duration) (time.Time, error)
}

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProfileResponse, error)
	GetByID(ctx context.Context, id string) (ProfileResponse, error)
	Create(ctx context.Context, actorID string, req CreateProfileRequest) (CreateProfileResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateProfileRequest) (ProfileResponse, error)
	UpdateSelf(ctx context.Context, userID string, req UpdateSelfRequest) (ProfileResponse, error)
	UpdateRole(ctx context.Context, actorID, id string, req UpdateRoleRequest) (RoleChangeResult, error)
	Delete(ctx context.Context, actorID, id string) error
	CreateForIdentity(ctx context.Context, seed auth.ProfileSeed) error
}

type service struct {
	db                *sql.DB
	repo              Repository
	outbox            kafka.OutboxRepository
	identities        IdentityProvisioner
	sessions          SessionRevoker
	selfDemotionDelay time.Duration
	now               func() time.Time
	logger            *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	identities IdentityProvisioner,
	sessions SessionRevoker,
	selfDemotionDelay time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{
		db:                db,
		repo:              repo,
		outbox:            outboxRepo,
		identities:        identities,
		sessions:          sessions,
		selfDemotionDelay: selfDemotionDelay,
		now:               time.Now,
		logger:            l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, profileerrors.ErrInvalidProfileID
	}
	return parsed, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx, filter.Role)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list profiles failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(profiles), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProfileResponse, error) {
	pid, err := parseID(id)
	if err != nil {
		return ProfileResponse{}, err
	}
	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Create provisions an identity with a temporary password and the profile
// that goes with it. The identity is removed again when the profile insert fails.
func (s *service) Create(ctx context.Context, actorID string, req CreateProfileRequest) (CreateProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, ok := access.ParseRole(req.Role); !ok {
		return CreateProfileResponse{}, profileerrors.ErrInvalidRole
	}

	identity, err := s.identities.ProvisionIdentity(ctx, req.Email)
	if err != nil {
		log.Warn("provision identity failed", zap.String("email", req.Email), zap.Error(err))
		return CreateProfileResponse{}, err
	}

	name := strings.TrimSpace(req.FullName)
	role := req.Role
	p := Profile{
		ID:         uuid.MustParse(identity.ID),
		Email:      identity.Email,
		FullName:   &name,
		Role:       &role,
		NationalID: req.NationalID,
	}

	if err := s.insertWithEvent(ctx, &p, actorID); err != nil {
		log.Error("create profile failed, removing identity",
			zap.String("profile_id", identity.ID),
			zap.Error(err),
		)
		if delErr := s.identities.RemoveIdentity(ctx, identity.ID); delErr != nil {
			log.Error("compensating identity delete failed",
				zap.String("profile_id", identity.ID),
				zap.Error(delErr),
			)
		}
		if errors.Is(err, profileerrors.ErrEmailAlreadyExists) ||
			errors.Is(err, profileerrors.ErrNationalIDAlreadyExists) {
			return CreateProfileResponse{}, err
		}
		return CreateProfileResponse{}, profileerrors.ErrProvisioningFailed.WithCause(err)
	}

	log.Info("profile created",
		zap.String("profile_id", identity.ID),
		zap.String("role", role),
	)
	return CreateProfileResponse{
		Profile:           mapToResponse(p),
		TemporaryPassword: identity.TemporaryPassword,
	}, nil
}

// CreateForIdentity stores the profile of a self-registered identity.
func (s *service) CreateForIdentity(ctx context.Context, seed auth.ProfileSeed) error {
	id, err := parseID(seed.UserID)
	if err != nil {
		return err
	}
	p := Profile{
		ID:       id,
		Email:    seed.Email,
		FullName: seed.FullName,
		Role:     seed.Role,
	}
	return s.insertWithEvent(ctx, &p, seed.UserID)
}

func (s *service) insertWithEvent(ctx context.Context, p *Profile, actorID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return err
	}

	if err := s.enqueue(ctx, tx, events.ProfileEvent{
		EventType: events.ProfileCreated,
		ProfileID: p.ID.String(),
		Email:     p.Email,
		NewRole:   p.Role,
		ActorID:   actorID,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	pid, err := parseID(id)
	if err != nil {
		return ProfileResponse{}, err
	}

	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.NationalID != nil {
		fields["national_id"] = *req.NationalID
	}
	return s.updateDetails(ctx, actorID, pid, fields)
}

func (s *service) UpdateSelf(ctx context.Context, userID string, req UpdateSelfRequest) (ProfileResponse, error) {
	pid, err := parseID(userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	return s.updateDetails(ctx, userID, pid, fields)
}

func (s *service) updateDetails(ctx context.Context, actorID string, id uuid.UUID, fields map[string]any) (ProfileResponse, error) {
	if len(fields) > 0 {
		if err := s.repo.UpdateDetails(ctx, id, fields); err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("update profile failed",
				zap.String("profile_id", id.String()),
				zap.String("actor_id", actorID),
				zap.Error(err),
			)
			return ProfileResponse{}, err
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

// UpdateRole changes a profile's role. When an admin takes their own admin
// role away, their sessions are revoked after the configured delay.
func (s *service) UpdateRole(ctx context.Context, actorID, id string, req UpdateRoleRequest) (RoleChangeResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	newRole, ok := access.ParseRole(req.Role)
	if !ok {
		return RoleChangeResult{}, profileerrors.ErrInvalidRole
	}
	pid, err := parseID(id)
	if err != nil {
		return RoleChangeResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update role begin tx failed", zap.Error(err))
		return RoleChangeResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByIDForUpdate(ctx, pid)
	if err != nil {
		return RoleChangeResult{}, err
	}

	previous := p.Role
	wasAdmin := previous != nil && *previous == access.RoleAdmin.String()
	selfDemotion := actorID == p.ID.String() && wasAdmin && newRole != access.RoleAdmin

	roleName := newRole.String()
	if err := qtx.UpdateRole(ctx, pid, roleName); err != nil {
		log.Error("update role persist failed", zap.Error(err))
		return RoleChangeResult{}, err
	}
	p.Role = &roleName

	if err := s.enqueue(ctx, tx, events.ProfileEvent{
		EventType:    events.ProfileRoleChanged,
		ProfileID:    p.ID.String(),
		Email:        p.Email,
		PreviousRole: previous,
		NewRole:      p.Role,
		SelfDemotion: selfDemotion,
		ActorID:      actorID,
	}); err != nil {
		log.Error("update role outbox persist failed", zap.Error(err))
		return RoleChangeResult{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update role commit failed", zap.Error(err))
		return RoleChangeResult{}, err
	}

	result := RoleChangeResult{Profile: mapToResponse(*p)}
	if !selfDemotion {
		log.Info("profile role changed",
			zap.String("profile_id", p.ID.String()),
			zap.String("role", newRole.String()),
		)
		return result, nil
	}

	signOutAt, err := s.sessions.RevokeUserAfter(ctx, actorID, s.selfDemotionDelay)
	if err != nil {
		log.Error("schedule self-demotion sign-out failed", zap.Error(err))
		return RoleChangeResult{}, err
	}
	result.SelfDemotion = true
	result.SignOutAt = &signOutAt
	result.SignedOutInMs = signOutAt.Sub(s.now()).Milliseconds()
	if result.SignedOutInMs < 0 {
		result.SignedOutInMs = 0
	}

	log.Warn("admin removed own admin role",
		zap.String("profile_id", p.ID.String()),
		zap.Time("sign_out_at", signOutAt),
	)
	return result, nil
}

// Delete removes the identity first, then the profile. A failure after the
// identity is gone is reported but not undone.
func (s *service) Delete(ctx context.Context, actorID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	if actorID == pid.String() {
		return profileerrors.ErrCannotDeleteSelf
	}

	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return err
	}

	if err := s.identities.RemoveIdentity(ctx, p.ID.String()); err != nil {
		log.Error("delete identity failed", zap.String("profile_id", id), zap.Error(err))
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete profile begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, pid); err != nil {
		log.Error("delete profile failed after identity removal",
			zap.String("profile_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.enqueue(ctx, tx, events.ProfileEvent{
		EventType:    events.ProfileDeleted,
		ProfileID:    p.ID.String(),
		Email:        p.Email,
		PreviousRole: p.Role,
		ActorID:      actorID,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete profile commit failed", zap.Error(err))
		return err
	}

	if _, err := s.sessions.RevokeUserAfter(ctx, p.ID.String(), 0); err != nil {
		log.Warn("revoke sessions of deleted profile failed", zap.Error(err))
	}

	log.Info("profile deleted", zap.String("profile_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, event events.ProfileEvent) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event.RequestID = rid
	event.OccurredAt = s.now().UTC()

	row, err := kafka.NewPendingEvent("profile", event.ProfileID, event.EventType, events.IdentityProfileTopic, rid, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

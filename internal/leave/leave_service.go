package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-leaveflow/internal/employee"
	employeeerrors "go-leaveflow/internal/employee/errors"
	"go-leaveflow/internal/events"
	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/profile"
	profileerrors "go-leaveflow/internal/profile/errors"
	"go-leaveflow/internal/shared/contextutil"
)

// ApplicantLookup loads the employee record a leave is filed for.
type ApplicantLookup interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

// ProfileLookup resolves the caller's own profile for ownership checks.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (profile.ProfileResponse, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor Actor, req LeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, actor Actor, filter ListFilter) (ListResult, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Edit(ctx context.Context, actor Actor, id string, req LeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (LeaveResponse, error)
}

type Options struct {
	// Location decides what "today" is for date validation.
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	applicants ApplicantLookup
	profiles   ProfileLookup
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	applicants ApplicantLookup,
	profiles ProfileLookup,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		db:         db,
		repo:       repo,
		outbox:     outboxRepo,
		applicants: applicants,
		profiles:   profiles,
		loc:        opts.Location,
		now:        opts.Now,
		logger:     l,
	}
}

func (s *service) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(v), s.loc)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

type validatedRequest struct {
	applicant employee.EmployeeResponse
	leaveType Type
	start     time.Time
	end       time.Time
	reason    string
}

// validate checks the request fields and rebuilds the applicant from the
// employee record. Dates must both be tomorrow or later.
func (s *service) validate(ctx context.Context, req LeaveRequest) (validatedRequest, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return validatedRequest{}, leaveerrors.ErrReasonRequired
	}
	leaveType, ok := ParseType(req.Type)
	if !ok {
		return validatedRequest{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := s.parseDate(req.StartDate)
	if err != nil {
		return validatedRequest{}, err
	}
	end, err := s.parseDate(req.EndDate)
	if err != nil {
		return validatedRequest{}, err
	}
	tomorrow := s.today().AddDate(0, 0, 1)
	if start.Before(tomorrow) || end.Before(tomorrow) {
		return validatedRequest{}, leaveerrors.ErrDateNotInFuture
	}
	if end.Before(start) {
		return validatedRequest{}, leaveerrors.ErrInvalidDateRange
	}

	if _, err := uuid.Parse(req.User.ID); err != nil {
		return validatedRequest{}, leaveerrors.ErrInvalidApplicantID
	}
	applicant, err := s.applicants.GetByID(ctx, req.User.ID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return validatedRequest{}, leaveerrors.ErrApplicantNotFound
		}
		return validatedRequest{}, err
	}

	return validatedRequest{
		applicant: applicant,
		leaveType: leaveType,
		start:     start,
		end:       end,
		reason:    reason,
	}, nil
}

// ownNationalID returns the caller's national ID. Admins are not scoped and
// get ok=false. A user without a national ID owns nothing.
func (s *service) ownNationalID(ctx context.Context, actor Actor) (nationalID string, scoped bool, err error) {
	if actor.IsAdmin() {
		return "", false, nil
	}
	p, err := s.profiles.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, profileerrors.ErrProfileNotFound) {
			return "", true, nil
		}
		return "", true, err
	}
	if p.NationalID == nil {
		return "", true, nil
	}
	return *p.NationalID, true, nil
}

func (s *service) checkOwnership(ctx context.Context, actor Actor, applicantNationalID string) error {
	own, scoped, err := s.ownNationalID(ctx, actor)
	if err != nil {
		return err
	}
	if scoped && (own == "" || own != applicantNationalID) {
		return leaveerrors.ErrNotOwner
	}
	return nil
}

func parseLeaveID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidLeaveID
	}
	return parsed, nil
}

func (s *service) Submit(ctx context.Context, actor Actor, req LeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	v, err := s.validate(ctx, req)
	if err != nil {
		log.Debug("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.checkOwnership(ctx, actor, v.applicant.NationalID); err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:            uuid.New(),
		LeaveType:     string(v.leaveType),
		StartDate:     v.start,
		EndDate:       v.end,
		Reason:        v.reason,
		SubmittedDate: s.today(),
		Status:        StatusPending.String(),
	}
	applySnapshot(l, v.applicant)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueue(ctx, tx, events.LeaveSubmitted, *l, actor.UserID); err != nil {
		log.Error("submit leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("applicant_id", l.ApplicantID.String()),
	)
	return mapToResponse(*l), nil
}

// List returns every application for admins. Users only see applications
// filed under their own national ID, whatever filter they pass.
func (s *service) List(ctx context.Context, actor Actor, filter ListFilter) (ListResult, error) {
	own, scoped, err := s.ownNationalID(ctx, actor)
	if err != nil {
		return ListResult{}, err
	}

	q := ListQuery{NationalID: strings.TrimSpace(filter.NationalID), Status: filter.Status}
	if scoped {
		if own == "" || (q.NationalID != "" && q.NationalID != own) {
			return ListResult{Items: []LeaveResponse{}, Page: filter.Page, PageSize: filter.PageSize}, nil
		}
		q.NationalID = own
	}

	page, pageSize := filter.Page, filter.PageSize
	if filter.Paginated() {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 20
		}
		q.Offset = (page - 1) * pageSize
		q.Limit = pageSize
	}

	leaves, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list leaves failed", zap.Error(err))
		return ListResult{}, err
	}
	return ListResult{
		Items:    mapToListResponse(leaves),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	lid, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}
	l, err := s.repo.FindByID(ctx, lid)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.checkOwnership(ctx, actor, l.ApplicantNationalID); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Edit(ctx context.Context, actor Actor, id string, req LeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	lid, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, lid)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !CanEdit(Status(l.Status)) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotEditable
	}
	if err := s.checkOwnership(ctx, actor, l.ApplicantNationalID); err != nil {
		return LeaveResponse{}, err
	}

	v, err := s.validate(ctx, req)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.checkOwnership(ctx, actor, v.applicant.NationalID); err != nil {
		return LeaveResponse{}, err
	}

	l.LeaveType = string(v.leaveType)
	l.StartDate = v.start
	l.EndDate = v.end
	l.Reason = v.reason
	applySnapshot(l, v.applicant)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("edit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdatePending(ctx, l); err != nil {
		log.Warn("edit leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueue(ctx, tx, events.LeaveUpdated, *l, actor.UserID); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("edit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave edited", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	lid, err := parseLeaveID(id)
	if err != nil {
		return err
	}

	l, err := s.repo.FindByID(ctx, lid)
	if err != nil {
		return err
	}
	if !CanDelete(Status(l.Status)) {
		return leaveerrors.ErrLeaveNotEditable
	}
	if err := s.checkOwnership(ctx, actor, l.ApplicantNationalID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeletePending(ctx, lid); err != nil {
		log.Warn("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := s.enqueue(ctx, tx, events.LeaveDeleted, *l, actor.UserID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("delete leave commit failed", zap.Error(err))
		return err
	}

	log.Info("leave deleted", zap.String("leave_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, StatusApproved, nil)
}

// Reject needs a reason. A blank one fails before anything is read.
func (s *service) Reject(ctx context.Context, actor Actor, id string, req RejectRequest) (LeaveResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, actor, id, StatusRejected, &reason)
}

func (s *service) decide(ctx context.Context, actor Actor, id string, to Status, reason *string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	lid, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}
	deciderID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApplicantID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, lid)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !CanTransition(Status(l.Status), to) {
		log.Warn("leave transition rejected",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", to.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	decidedAt := s.now().UTC()
	if err := qtx.Decide(ctx, lid, Decision{
		Status:          to,
		DecidedBy:       deciderID,
		DecidedAt:       decidedAt,
		RejectionReason: reason,
	}); err != nil {
		log.Warn("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Status = to.String()
	l.DecidedBy = &deciderID
	l.DecidedAt = &decidedAt
	l.RejectionReason = reason

	eventType := events.LeaveApproved
	if to == StatusRejected {
		eventType = events.LeaveRejected
	}
	if err := s.enqueue(ctx, tx, eventType, *l, actor.UserID); err != nil {
		log.Error("decide leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave decided",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l Leave, actorID string) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveEvent{
		EventType:       eventType,
		RequestID:       rid,
		LeaveID:         l.ID.String(),
		ApplicantID:     l.ApplicantID.String(),
		NationalID:      l.ApplicantNationalID,
		LeaveType:       l.LeaveType,
		Status:          l.Status,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		RejectionReason: l.RejectionReason,
		ActorID:         actorID,
		OccurredAt:      s.now().UTC(),
	}

	row, err := kafka.NewPendingEvent("leave", event.LeaveID, eventType, events.LeaveLifecycleTopic, rid, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func applySnapshot(l *Leave, e employee.EmployeeResponse) {
	l.ApplicantID = uuid.MustParse(e.ID)
	l.ApplicantName = e.Name
	l.ApplicantAddress = e.Address
	l.ApplicantAge = e.Age
	l.ApplicantNationalID = e.NationalID
	l.ApplicantGender = e.Gender
	l.ApplicantStatus = e.Status
}

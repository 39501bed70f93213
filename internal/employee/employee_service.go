package employee

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	employeeerrors "go-leaveflow/internal/employee/errors"
	"go-leaveflow/internal/shared/contextutil"
)

const (
	EmployeeListKey = "employees:list"
	listCacheTTL    = time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req EmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return parsed, nil
}

func (s *service) Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	req = req.Normalize()

	empl := &Employee{ID: uuid.New()}
	empl.apply(req)

	if err := s.repo.Create(ctx, empl); err != nil {
		log.Warn("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))
	return mapToResponse(*empl), nil
}

// GetAll serves the list from Redis when possible. Concurrent misses share
// one database read.
func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeListKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeListKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(emps)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeListKey, jsonData, listCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	eid, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req EmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	eid, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, err
	}
	empl.apply(req.Normalize())

	if err := s.repo.Update(ctx, empl); err != nil {
		log.Warn("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	eid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, eid); err != nil {
		log.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateList(ctx)
	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListKey),
		)
	}
}

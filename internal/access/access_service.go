package access

import (
	"slices"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	CanAccessPage(role *Role, page string) Decision
	AllowedPages(role *Role) []string
	HomePage(role *Role) string
	Authorize(role *Role, resource, action string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("access.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// NewDefaultService builds a service over the built-in role matrix.
func NewDefaultService(logger ...*zap.Logger) (Service, error) {
	e, err := NewEnforcer(DefaultPolicies())
	if err != nil {
		return nil, err
	}
	return NewService(e, logger...), nil
}

func (s *service) enforce(sub, obj, act string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ok, err := s.enforcer.Enforce(sub, obj, act)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("sub", sub),
			zap.String("obj", obj),
			zap.String("act", act),
			zap.Error(err),
		)
		return false
	}
	return ok
}

func (s *service) CanAccessPage(role *Role, page string) Decision {
	if role == nil {
		return Decision{Allowed: false, Reason: ReasonNoRole}
	}
	if !slices.Contains(AllPages, page) {
		return Decision{Allowed: false, Reason: ReasonUnknownPage}
	}
	if !s.enforce(string(*role), ResourcePage+":"+page, ActionView) {
		return Decision{Allowed: false, Reason: ReasonPageRestricted}
	}
	return Decision{Allowed: true}
}

func (s *service) AllowedPages(role *Role) []string {
	pages := make([]string, 0, len(AllPages))
	if role == nil {
		return pages
	}
	for _, page := range AllPages {
		if s.CanAccessPage(role, page).Allowed {
			pages = append(pages, page)
		}
	}
	return pages
}

func (s *service) HomePage(role *Role) string {
	if role == nil {
		return ""
	}
	switch *role {
	case RoleAdmin:
		return PageDashboard
	case RoleUser:
		return PageLeave
	}
	pages := s.AllowedPages(role)
	if len(pages) == 0 {
		return ""
	}
	return pages[0]
}

func (s *service) Authorize(role *Role, resource, action string) bool {
	if role == nil {
		return false
	}
	return s.enforce(string(*role), resource, action)
}

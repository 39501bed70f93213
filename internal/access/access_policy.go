package access

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

func pagePolicy(role Role, page string) []string {
	return []string{string(role), ResourcePage + ":" + page, ActionView}
}

func apiPolicy(role Role, resource string, actions ...string) [][]string {
	rules := make([][]string, 0, len(actions))
	for _, act := range actions {
		rules = append(rules, []string{string(role), resource, act})
	}
	return rules
}

// DefaultPolicies is the full role matrix: which pages each role may open
// and which API actions it may perform.
func DefaultPolicies() [][]string {
	var rules [][]string

	for _, page := range []string{PageDashboard, PageUsers, PageRoles, PageProfile, PagePendingApproval} {
		rules = append(rules, pagePolicy(RoleAdmin, page))
	}
	for _, page := range []string{PageLeave, PageProfile} {
		rules = append(rules, pagePolicy(RoleUser, page))
	}

	rules = append(rules, apiPolicy(RoleAdmin, ResourceLeave,
		ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionApprove, ActionReject)...)
	rules = append(rules, apiPolicy(RoleAdmin, ResourceEmployee,
		ActionRead, ActionCreate, ActionUpdate, ActionDelete)...)
	rules = append(rules, apiPolicy(RoleAdmin, ResourceProfile,
		ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionUpdateRole, ActionSelf)...)
	rules = append(rules, apiPolicy(RoleAdmin, ResourceDashboard, ActionRead)...)

	rules = append(rules, apiPolicy(RoleUser, ResourceLeave,
		ActionRead, ActionCreate, ActionUpdate, ActionDelete)...)
	rules = append(rules, apiPolicy(RoleUser, ResourceEmployee, ActionRead)...)
	rules = append(rules, apiPolicy(RoleUser, ResourceProfile, ActionSelf)...)

	return rules
}

func NewEnforcer(policies [][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load access model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("load access policies: %w", err)
		}
	}

	return e, nil
}

package access

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole accepts only the exact known roles. Anything else, including the
// empty string or a padded value, yields no role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// RoleFromPtr parses a nullable column value.
func RoleFromPtr(raw *string) *Role {
	if raw == nil {
		return nil
	}
	r, ok := ParseRole(*raw)
	if !ok {
		return nil
	}
	return &r
}

func (r Role) Ptr() *Role { return &r }

func (r Role) String() string { return string(r) }

// Page keys are the navigation identifiers the web client uses.
const (
	PageDashboard       = "dashboard"
	PageUsers           = "users"
	PageRoles           = "roles"
	PageProfile         = "profile"
	PagePendingApproval = "Pending Approval"
	PageLeave           = "Leave"
)

// AllPages is the navigation order.
var AllPages = []string{
	PageDashboard,
	PageUsers,
	PageRoles,
	PageLeave,
	PagePendingApproval,
	PageProfile,
}

const (
	ResourcePage      = "page"
	ResourceLeave     = "leave"
	ResourceEmployee  = "employee"
	ResourceProfile   = "profile"
	ResourceDashboard = "dashboard"
)

const (
	ActionView       = "view"
	ActionRead       = "read"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionUpdateRole = "update_role"
	ActionSelf       = "self"
)

package leave

import "strings"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

func CanEdit(s Status) bool { return s == StatusPending }

func CanDelete(s Status) bool { return s.Valid() && !s.IsTerminal() }

// CanTransition allows only the two decisions out of PENDING.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

type Type string

const (
	TypeSick      Type = "SICK"
	TypeAnnual    Type = "ANNUAL"
	TypeMaternity Type = "MATERNITY"
)

func ParseType(raw string) (Type, bool) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TypeSick, TypeAnnual, TypeMaternity:
		return t, true
	}
	return "", false
}

package authz

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleClient Role = "client"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin:  {},
	RoleDoctor: {},
	RoleClient: {},
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := KnownRoles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// Principal is the verified caller. It is resolved once per request by the
// auth middleware and passed explicitly to every use case.
type Principal struct {
	UserID uint
	Role   Role
}

func (p Principal) IsZero() bool { return p.UserID == 0 || p.Role == "" }

// ----------------------------
// Resources
// ----------------------------

type Resource string

const (
	WildcardResource Resource = "*"

	ResourceProgram      Resource = "program"
	ResourceClient       Resource = "client"
	ResourceEnrollment   Resource = "enrollment"
	ResourceAppointment  Resource = "appointment"
	ResourceUser         Resource = "user"
	ResourceNotification Resource = "notification"
	ResourceAuditLog     Resource = "audit_log"
)

// ----------------------------
// Actions
// ----------------------------

type Action string

const (
	WildcardAction Action = "*"

	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	ActionSearch Action = "search"
)

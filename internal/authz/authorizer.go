package authz

import (
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/cema-health/program-manager/internal/httperr"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == r.obj || p.obj == "*") && (p.act == r.act || p.act == "*")
`

// DefaultPolicies is the role/permission table enforced by the service.
var DefaultPolicies = [][]string{
	{string(RoleAdmin), string(WildcardResource), string(WildcardAction)},

	{string(RoleDoctor), string(ResourceProgram), string(WildcardAction)},
	{string(RoleDoctor), string(ResourceClient), string(ActionCreate)},
	{string(RoleDoctor), string(ResourceClient), string(ActionRead)},
	{string(RoleDoctor), string(ResourceClient), string(ActionSearch)},
	{string(RoleDoctor), string(ResourceEnrollment), string(WildcardAction)},
	{string(RoleDoctor), string(ResourceAppointment), string(WildcardAction)},
	{string(RoleDoctor), string(ResourceNotification), string(ActionList)},
	{string(RoleDoctor), string(ResourceNotification), string(ActionUpdate)},

	{string(RoleClient), string(ResourceProgram), string(ActionList)},
	{string(RoleClient), string(ResourceProgram), string(ActionRead)},
	{string(RoleClient), string(ResourceClient), string(ActionRead)},
	{string(RoleClient), string(ResourceNotification), string(ActionList)},
	{string(RoleClient), string(ResourceNotification), string(ActionUpdate)},
}

type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer() (*Authorizer, error) {
	return NewAuthorizerWithPolicies(DefaultPolicies)
}

func NewAuthorizerWithPolicies(policies [][]string) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}

	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("authz policies: %w", err)
		}
	}

	return &Authorizer{enforcer: e}, nil
}

func (a *Authorizer) Allowed(p Principal, res Resource, act Action) (bool, error) {
	if p.IsZero() {
		return false, nil
	}
	return a.enforcer.Enforce(string(p.Role), string(res), string(act))
}

// Require returns a PermissionDenied BusinessError when p may not perform act
// on res.
func (a *Authorizer) Require(p Principal, res Resource, act Action) error {
	if p.IsZero() {
		return httperr.Unauthenticated("unauthenticated", "Authentication required.")
	}

	ok, err := a.Allowed(p, res, act)
	if err != nil {
		return fmt.Errorf("enforce %s %s: %w", res, act, err)
	}
	if !ok {
		return httperr.PermissionDenied(
			"permission_denied",
			"You do not have permission to perform this action.",
		)
	}
	return nil
}

// RequireClientAccess allows staff roles with client read permission, and a
// client-role principal only for its own record.
func (a *Authorizer) RequireClientAccess(p Principal, clientID uint) error {
	if err := a.Require(p, ResourceClient, ActionRead); err != nil {
		return err
	}
	if p.Role == RoleClient && p.UserID != clientID {
		return httperr.PermissionDenied(
			"permission_denied",
			"You can only view your own profile.",
		)
	}
	return nil
}

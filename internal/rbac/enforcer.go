package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role names as stored in the roles table and carried in token claims.
const (
	RoleAdmin = "ADMIN"
	RoleHR    = "HR"
	RoleUser  = "USER"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds a casbin enforcer carrying the static authorization
// policy of this system: USER reads, HR additionally manages HR records,
// ADMIN additionally manages accounts and roles.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Role hierarchy: ADMIN > HR > USER.
	groupings := [][]string{
		{RoleAdmin, RoleHR},
		{RoleHR, RoleUser},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	readable := []string{"employee", "department", "salary", "document", "user"}
	for _, resource := range readable {
		if _, err := e.AddPolicy(RoleUser, resource, "read"); err != nil {
			return nil, err
		}
	}

	managed := []string{"employee", "department", "salary", "document"}
	for _, resource := range managed {
		for _, action := range []string{"create", "update", "delete"} {
			if _, err := e.AddPolicy(RoleHR, resource, action); err != nil {
				return nil, err
			}
		}
	}

	for _, action := range []string{"create", "update", "delete"} {
		if _, err := e.AddPolicy(RoleAdmin, "user", action); err != nil {
			return nil, err
		}
	}

	return e, nil
}

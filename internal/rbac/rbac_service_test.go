package rbac_test

import (
	"testing"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
	"github.com/Qoxxoraliyev/employee-management/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcerPolicy(t *testing.T) {
	enforcer, err := rbac.NewEnforcer()
	require.NoError(t, err)
	svc := rbac.NewService(enforcer)

	cases := []struct {
		name    string
		req     domain.EnforceRequest
		allowed bool
	}{
		{"user reads employees", domain.EnforceRequest{Role: rbac.RoleUser, Resource: "employee", Action: "read"}, true},
		{"user reads salaries", domain.EnforceRequest{Role: rbac.RoleUser, Resource: "salary", Action: "read"}, true},
		{"user cannot create employees", domain.EnforceRequest{Role: rbac.RoleUser, Resource: "employee", Action: "create"}, false},
		{"user cannot delete documents", domain.EnforceRequest{Role: rbac.RoleUser, Resource: "document", Action: "delete"}, false},
		{"hr inherits read", domain.EnforceRequest{Role: rbac.RoleHR, Resource: "department", Action: "read"}, true},
		{"hr manages employees", domain.EnforceRequest{Role: rbac.RoleHR, Resource: "employee", Action: "create"}, true},
		{"hr manages salaries", domain.EnforceRequest{Role: rbac.RoleHR, Resource: "salary", Action: "update"}, true},
		{"hr cannot manage accounts", domain.EnforceRequest{Role: rbac.RoleHR, Resource: "user", Action: "create"}, false},
		{"admin inherits hr powers", domain.EnforceRequest{Role: rbac.RoleAdmin, Resource: "employee", Action: "delete"}, true},
		{"admin manages accounts", domain.EnforceRequest{Role: rbac.RoleAdmin, Resource: "user", Action: "create"}, true},
		{"unknown role is denied", domain.EnforceRequest{Role: "GUEST", Resource: "employee", Action: "read"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

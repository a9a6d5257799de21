package rbac

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
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

// The role matrix is fixed: three roles, no per-tenant policy storage.
// Ownership checks (an employee may only touch their own records) stay in
// the services; this layer only answers "may this role do this at all".
var policies = [][]string{
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "payroll", "read"},
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "employee", "update"},
	{RoleEmployee, "announcement", "read"},

	{RoleHR, "attendance", "mark"},
	{RoleHR, "leave", "decide"},
	{RoleHR, "payroll", "update"},
	{RoleHR, "employee", "list"},
	{RoleHR, "report", "read"},
	{RoleHR, "announcement", "create"},
}

var groupings = [][]string{
	{RoleHR, RoleEmployee},
	{RoleAdmin, RoleHR},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(normalizeRole(role), resource, action)
}

// IsPrivileged reports whether the role is exempt from ownership checks.
func IsPrivileged(role string) bool {
	switch normalizeRole(role) {
	case RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

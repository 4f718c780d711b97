package mocks

import (
	"slices"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	SaveCalls        int
	policies         [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a MockCasbinEnforcer seeded with a few role rules
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{string(domain.RolePGOwner), "/api/owner/*", "GET"},
			{string(domain.RolePGOwner), "/api/properties", "POST"},
			{string(domain.RoleRoomFinder), "/api/bookings/request", "POST"},
			{string(domain.RoleRoomFinder), "/api/bookings/my", "GET"},
		},
	}
}

func toRule(params []interface{}) []string {
	rule := make([]string, 0, len(params))
	for _, p := range params {
		if s, ok := p.(string); ok {
			rule = append(rule, s)
		}
	}
	return rule
}

// AddPolicy adds a new policy rule; false when it already exists
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	if len(rule) < 3 || m.has(rule) {
		return false, nil
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a policy rule; false when it was not present
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	rule := toRule(params)
	for i, p := range m.policies {
		if slices.Equal(p, rule) {
			m.policies = slices.Delete(m.policies, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// Enforce matches role, path and method against stored rules. A trailing
// "*" in the stored path matches any suffix.
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toRule(rvals)
	if len(req) < 3 {
		return false, nil
	}
	for _, p := range m.policies {
		if p[0] != req[0] || (p[2] != req[2] && p[2] != "*") {
			continue
		}
		if p[1] == req[1] || (strings.HasSuffix(p[1], "*") && strings.HasPrefix(req[1], strings.TrimSuffix(p[1], "*"))) {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns a copy of all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, p := range m.policies {
		result[i] = slices.Clone(p)
	}
	return result, nil
}

// SavePolicy counts the call and succeeds by default
func (m *MockCasbinEnforcer) SavePolicy() error {
	m.SaveCalls++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// SetPolicies replaces the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, p := range policies {
		m.policies[i] = slices.Clone(p)
	}
}

func (m *MockCasbinEnforcer) has(rule []string) bool {
	return slices.ContainsFunc(m.policies, func(p []string) bool { return slices.Equal(p, rule) })
}

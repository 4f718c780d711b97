package mocks

import (
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(role, resource, action string) error
	RemovePolicyFunc    func(role, resource, action string) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	GetPoliciesFunc     func() [][]string
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// AddPolicy succeeds by default
func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

// RemovePolicy succeeds by default
func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

// CheckPermission allows owners everything under /api/owner and finders
// their booking routes
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	switch domain.Role(role) {
	case domain.RolePGOwner:
		return strings.HasPrefix(resource, "/api/owner"), nil
	case domain.RoleRoomFinder:
		return resource == domain.PathBookRequest || resource == domain.PathMyBookings, nil
	}
	return false, nil
}

// GetPolicies returns a fixed policy set
func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{
		{string(domain.RolePGOwner), "/api/owner/*", "GET"},
		{string(domain.RoleRoomFinder), domain.PathBookRequest, "POST"},
		{string(domain.RoleRoomFinder), domain.PathMyBookings, "GET"},
	}
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)

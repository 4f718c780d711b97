package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// RBACModel matches a role against gin route patterns such as
// /api/bookings/:id/status
const RBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// DefaultPolicies are the role routes seeded on first start
var DefaultPolicies = [][]string{
	{string(domain.RolePGOwner), domain.PathProperties, "POST"},
	{string(domain.RolePGOwner), domain.PathMyProperties, "GET"},
	{string(domain.RolePGOwner), domain.PathOwnerBooking, "GET"},
	{string(domain.RolePGOwner), domain.PathBookings + "/:id/status", "PUT"},
	{string(domain.RolePGOwner), domain.PathDashboard, "GET"},
	{string(domain.RolePGOwner), domain.PathOwnerInquiry, "GET"},
	{string(domain.RoleRoomFinder), domain.PathBookRequest, "POST"},
	{string(domain.RoleRoomFinder), domain.PathMyBookings, "GET"},
	{string(domain.RoleRoomFinder), domain.PathInquiries, "POST"},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService loads policies from the casbin_rule table, seeding
// DefaultPolicies when a rule is missing
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(RBACModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}
	for _, p := range DefaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	return &CasbinService{E: e}, nil
}

package application

import (
	"slices"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

// Principal is the authenticated caller, taken from a verified token.
type Principal struct {
	Subject string      `json:"subject"`
	Role    entity.Role `json:"role"`
}

// Policy is the set of roles allowed to perform an operation and the message
// returned to everyone else.
type Policy struct {
	Allowed []entity.Role
	Denied  string
}

var (
	AggregatorOnly   = Policy{Allowed: []entity.Role{entity.RoleAggregator}, Denied: "Only aggregator allowed"}
	DashboardViewers = Policy{Allowed: []entity.Role{entity.RoleAdmin, entity.RoleAggregator}, Denied: "Access denied"}
	AdminOnly        = Policy{Allowed: []entity.Role{entity.RoleAdmin}, Denied: "Admin only"}
)

// Check returns an *AuthzError unless p's role is allowed.
func (pol Policy) Check(p Principal) error {
	if slices.Contains(pol.Allowed, p.Role) {
		return nil
	}
	return &AuthzError{Role: p.Role, Message: pol.Denied}
}

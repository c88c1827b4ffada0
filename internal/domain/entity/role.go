package entity

import (
	"fmt"
	"strings"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAggregator Role = "aggregator"
	RoleBuyer      Role = "buyer"
)

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleAggregator, RoleBuyer}
}

// ParseRole maps a raw string onto a Role, rejecting anything outside the enum.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAggregator, RoleBuyer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

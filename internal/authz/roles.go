// Package authz implements the role model and section access policy.
package authz

import "qubeia/internal/models"

// Capability is a named permission held by specific roles independent of rank.
type Capability string

const (
	CapabilityBugTriage Capability = "bug-triage"
	CapabilityDevPanel  Capability = "dev-panel"
)

// roleRanks is the single authoritative rank table. Admin and developer share
// a rank; they differ only in capabilities.
var roleRanks = map[models.Role]int{
	models.RoleUser:      0,
	models.RoleHelper:    1,
	models.RoleModerator: 2,
	models.RoleAdmin:     3,
	models.RoleDeveloper: 3,
	models.RoleOwner:     4,
}

// roleCapabilities maps roles to the capabilities they hold. Capabilities are
// not inherited by rank: owner outranks developer yet holds none of these.
var roleCapabilities = map[models.Role]map[Capability]bool{
	models.RoleDeveloper: {
		CapabilityBugTriage: true,
		CapabilityDevPanel:  true,
	},
}

// Rank returns the numeric rank for a role. Unknown roles report ok=false
// and callers must treat them as unauthorized.
func Rank(role models.Role) (int, bool) {
	rank, ok := roleRanks[role]
	return rank, ok
}

// KnownRole reports whether the role exists in the role model.
func KnownRole(role models.Role) bool {
	_, ok := roleRanks[role]
	return ok
}

// RankAtLeast reports whether role's rank meets or exceeds threshold's rank.
// False if either role is unknown.
func RankAtLeast(role, threshold models.Role) bool {
	r, ok := Rank(role)
	if !ok {
		return false
	}
	t, ok := Rank(threshold)
	if !ok {
		return false
	}
	return r >= t
}

// HasCapability reports whether the role holds the capability.
func HasCapability(role models.Role, cap Capability) bool {
	return roleCapabilities[role][cap]
}

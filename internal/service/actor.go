// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"qubeia/internal/authz"
	"qubeia/internal/models"
)

// Actor is the authenticated principal a handler resolved from the request.
type Actor struct {
	ID   uint
	Role models.Role
}

// RankAtLeast reports whether the actor's role meets the threshold.
func (a Actor) RankAtLeast(threshold models.Role) bool {
	return authz.RankAtLeast(a.Role, threshold)
}

// Has reports whether the actor's role carries the capability.
func (a Actor) Has(cap authz.Capability) bool {
	return authz.HasCapability(a.Role, cap)
}

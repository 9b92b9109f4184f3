// Package authz decides which role a signing-in identity receives.
package authz

import (
	"github.com/atendeai/dashboard-server-go/internal/model"
)

// RoleFor resolves the role for an identity at upsert time. An explicit
// role from the caller always wins; otherwise the configured owner identity
// gets admin and everyone else gets user.
func RoleFor(openID, ownerOpenID string, explicit *model.Role) model.Role {
	if explicit != nil {
		return *explicit
	}
	if ownerOpenID != "" && openID == ownerOpenID {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// RoleApplies reports whether the resolved role may overwrite a stored
// one. Only an explicit role or an owner match carries that authority; a
// plain re-login must leave a stored role (such as an out-of-band
// promotion to admin) untouched.
func RoleApplies(openID, ownerOpenID string, explicit *model.Role) bool {
	return explicit != nil || (ownerOpenID != "" && openID == ownerOpenID)
}

package registry

import (
	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
)

// AccessController holds the single administrator identity and answers role
// questions. It is a flat capability check composed in front of each mutating
// operation; it has no other side effects.
type AccessController struct {
	admin identity.Identity
}

// NewAccessController creates a controller with the given initial admin.
func NewAccessController(admin identity.Identity) *AccessController {
	return &AccessController{admin: admin}
}

// Admin returns the current administrator identity.
func (a *AccessController) Admin() identity.Identity {
	return a.admin
}

// IsAdmin reports whether caller is the administrator.
func (a *AccessController) IsAdmin(caller identity.Identity) bool {
	return caller == a.admin
}

// RequireAdmin fails with an AuthorizationError when caller is not the
// administrator. op names the operation for error context.
func (a *AccessController) RequireAdmin(caller identity.Identity, op string) error {
	if !a.IsAdmin(caller) {
		return errors.NewAuthorizationError(op, "admin")
	}
	return nil
}

// RequireOwner fails with an AuthorizationError when caller does not hold
// title to the land. op names the operation for error context.
func (a *AccessController) RequireOwner(caller identity.Identity, land *Land, op string) error {
	if caller != land.Owner {
		return errors.NewAuthorizationError(op, "current owner")
	}
	return nil
}

// SetAdmin replaces the administrator. Only the current admin may call it and
// the new admin must not be the null identity.
func (a *AccessController) SetAdmin(caller, newAdmin identity.Identity) error {
	if err := a.RequireAdmin(caller, "transferAdmin"); err != nil {
		return err
	}
	if newAdmin.IsZero() {
		return errors.NewInvalidArgumentError("newAdmin", "admin cannot be the zero identity", newAdmin.Hex())
	}
	a.admin = newAdmin
	return nil
}

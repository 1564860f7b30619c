package registry

import (
	"testing"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
)

var admin = identity.MustParse("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

func TestAccessControllerIsAdmin(t *testing.T) {
	ac := NewAccessController(admin)
	if !ac.IsAdmin(admin) {
		t.Error("admin should be recognized")
	}
	if ac.IsAdmin(ownerX) {
		t.Error("non-admin should not be recognized")
	}
}

func TestRequireAdmin(t *testing.T) {
	ac := NewAccessController(admin)
	if err := ac.RequireAdmin(admin, "registerLand"); err != nil {
		t.Errorf("admin should pass: %v", err)
	}
	err := ac.RequireAdmin(ownerX, "registerLand")
	if !errors.IsAuthorization(err) {
		t.Errorf("expected AuthorizationError, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	ac := NewAccessController(admin)
	land := &Land{ID: 1, Owner: ownerX}

	if err := ac.RequireOwner(ownerX, land, "transferOwnership"); err != nil {
		t.Errorf("owner should pass: %v", err)
	}
	if err := ac.RequireOwner(ownerY, land, "transferOwnership"); !errors.IsAuthorization(err) {
		t.Errorf("expected AuthorizationError, got %v", err)
	}
	// Admin rights do not imply ownership.
	if err := ac.RequireOwner(admin, land, "transferOwnership"); !errors.IsAuthorization(err) {
		t.Errorf("admin without title should fail, got %v", err)
	}
}

func TestSetAdmin(t *testing.T) {
	tests := []struct {
		name     string
		caller   identity.Identity
		newAdmin identity.Identity
		check    func(error) bool
	}{
		{"non-admin caller", ownerX, ownerY, errors.IsAuthorization},
		{"zero new admin", admin, identity.Zero, errors.IsInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := NewAccessController(admin)
			if err := ac.SetAdmin(tt.caller, tt.newAdmin); !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
			if ac.Admin() != admin {
				t.Error("failed SetAdmin must not change the admin")
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ac := NewAccessController(admin)
		if err := ac.SetAdmin(admin, ownerX); err != nil {
			t.Fatalf("SetAdmin failed: %v", err)
		}
		if ac.Admin() != ownerX {
			t.Error("admin should be replaced")
		}
		// The old admin has no residual rights.
		if err := ac.RequireAdmin(admin, "registerLand"); !errors.IsAuthorization(err) {
			t.Errorf("old admin should be rejected, got %v", err)
		}
	})
}

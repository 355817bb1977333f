package models

import "testing"

func TestIsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("expected admin role to be admin")
	}

	owner := User{Role: RoleFranchiseOwner}
	if owner.IsAdmin() {
		t.Error("expected franchise owner role not to be admin")
	}
}

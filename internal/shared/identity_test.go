package shared

import "testing"

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Fatal("nil identity must never be admin")
	}
	if IsAdmin(&Identity{Role: RoleUser}) {
		t.Fatal("standard role must not be admin")
	}
	if IsAdmin(&Identity{Role: "admin"}) {
		t.Fatal("role comparison is exact, lowercase must not match")
	}
	if !IsAdmin(&Identity{Role: RoleAdmin}) {
		t.Fatal("administrative role must be admin")
	}
}

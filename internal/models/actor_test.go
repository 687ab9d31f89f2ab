package models

import "testing"

// TestRoleElevated verifies which roles carry publish/visibility privileges.
func TestRoleElevated(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleOwner, true},
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleAuthor, false},
		{RoleContributor, false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Elevated(); got != tt.want {
				t.Errorf("Role(%q).Elevated() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestActorTrusted verifies the trust rules for visibility changes.
func TestActorTrusted(t *testing.T) {
	tests := []struct {
		name  string
		actor *Actor
		want  bool
	}{
		{name: "nil actor", actor: nil, want: false},
		{name: "integration", actor: &Actor{Type: ActorTypeIntegration}, want: true},
		{name: "internal", actor: &Actor{Type: ActorTypeInternal}, want: true},
		{name: "editor user", actor: &Actor{Type: ActorTypeUser, Role: RoleEditor}, want: true},
		{name: "contributor user", actor: &Actor{Type: ActorTypeUser, Role: RoleContributor}, want: false},
		{name: "author user", actor: &Actor{Type: ActorTypeUser, Role: RoleAuthor}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.Trusted(); got != tt.want {
				t.Errorf("Trusted() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestActorInternal ensures only internal-type actors bypass lead-time checks.
func TestActorInternal(t *testing.T) {
	if (&Actor{Type: ActorTypeUser, Role: RoleOwner}).Internal() {
		t.Error("owner user must not count as internal")
	}
	if !(&Actor{Type: ActorTypeInternal}).Internal() {
		t.Error("internal actor must count as internal")
	}
	var none *Actor
	if none.Internal() {
		t.Error("nil actor must not count as internal")
	}
}

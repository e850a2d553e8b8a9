package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_Guards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal Principal
		ownerID   int64
		canAccess bool
		owns      bool
	}{
		{name: "owner user", principal: Principal{UserID: 1, Role: RoleUser}, ownerID: 1, canAccess: true, owns: true},
		{name: "other user", principal: Principal{UserID: 1, Role: RoleUser}, ownerID: 2, canAccess: false, owns: false},
		{name: "admin on other account", principal: Principal{UserID: 1, Role: RoleAdmin}, ownerID: 2, canAccess: true, owns: false},
		{name: "admin on own account", principal: Principal{UserID: 3, Role: RoleAdmin}, ownerID: 3, canAccess: true, owns: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.canAccess, tt.principal.CanAccess(tt.ownerID))
			assert.Equal(t, tt.owns, tt.principal.Owns(tt.ownerID))
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("admin").IsValid())
	assert.False(t, Role("").IsValid())
}

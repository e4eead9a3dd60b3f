package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPIN(t *testing.T) {
	cases := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
		{" 123", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidPIN(tc.pin), "pin %q", tc.pin)
	}
}

func TestValidTeam(t *testing.T) {
	for _, team := range Teams {
		assert.True(t, ValidTeam(team))
	}
	assert.False(t, ValidTeam("Quality Assurance"))
	assert.False(t, ValidTeam(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(StaffRoleStaff))
	assert.True(t, ValidRole(StaffRoleLeader))
	assert.True(t, ValidRole(StaffRoleAdmin))
	assert.False(t, ValidRole("manager"))
}

func TestSeedAdmin(t *testing.T) {
	admin := SeedAdmin()
	assert.Equal(t, AdminName, admin.Name)
	assert.Equal(t, StaffRoleAdmin, admin.Role)
	assert.Equal(t, DefaultPIN, admin.PIN)
	assert.True(t, admin.UsesDefaultPIN())
	assert.True(t, admin.IsSeedAdmin())
}

func TestUsesDefaultPIN(t *testing.T) {
	rec := &StaffRecord{PIN: DefaultPIN}
	assert.True(t, rec.UsesDefaultPIN())
	rec.PIN = "9876"
	assert.False(t, rec.UsesDefaultPIN())
}

package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSet_AddRemove(t *testing.T) {
	set := NewRoleSet(RoleCustomer)
	assert.True(t, set.Has(RoleCustomer))
	assert.False(t, set.Has(RoleAdmin))

	set = set.Add(RoleAdmin)
	assert.True(t, set.HasAny(RoleAdmin, RoleWorker))
	assert.Equal(t, []Role{RoleAdmin, RoleCustomer}, set.Roles())

	set = set.Remove(RoleCustomer)
	assert.Equal(t, []string{"ADMIN"}, set.ToStrings())

	assert.Equal(t, set, set.Add(Role("SUPERUSER")))
	assert.False(t, set.Has(Role("")))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	role, ok = ParseRole(" Worker ")
	assert.True(t, ok)
	assert.Equal(t, RoleWorker, role)

	_, ok = ParseRole("admn")
	assert.False(t, ok)
}

func TestRoleSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewRoleSet(RoleWorker, RoleAdmin))
	require.NoError(t, err)
	assert.JSONEq(t, `["ADMIN","WORKER"]`, string(data))

	var decoded RoleSet
	require.NoError(t, json.Unmarshal([]byte(`["CUSTOMER","bogus"]`), &decoded))
	assert.Equal(t, NewRoleSet(RoleCustomer), decoded)
}

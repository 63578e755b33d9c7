package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenbank/banking/pkg/domain/user"
	"github.com/zenbank/banking/pkg/utils"
)

func TestNew(t *testing.T) {
	t.Parallel()
	u, err := user.New("Alice", "alice@example.com", "password123", "555-0100", "1 Main St")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, user.RoleUser, u.Role, "New users never start as admin")
	assert.NotEqual(t, "password123", u.HashedPassword)
	assert.True(t, utils.CheckPasswordHash("password123", u.HashedPassword))

	t.Run("empty name", func(t *testing.T) {
		_, err := user.New("", "alice@example.com", "password123", "", "")
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := user.New("Alice", "not-an-email", "password123", "", "")
		assert.Error(t, err)
	})
}

func TestRoleValid(t *testing.T) {
	t.Parallel()
	assert.True(t, user.RoleUser.Valid())
	assert.True(t, user.RoleAdmin.Valid())
	assert.False(t, user.Role("superuser").Valid())
	assert.False(t, user.Role("").Valid())
}

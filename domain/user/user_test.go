package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalQuota(t *testing.T) {
	u := User{ModelQuota: 3, GrantedQuota: 5}
	assert.Equal(t, 8, u.TotalQuota())

	u = User{ModelQuota: 3}
	assert.Equal(t, 3, u.TotalQuota())
}

func TestSharePreference_IsValid(t *testing.T) {
	assert.True(t, SharePublic.IsValid())
	assert.True(t, ShareAuthenticated.IsValid())
	assert.True(t, SharePrivate.IsValid())
	assert.False(t, SharePreference("friends-only").IsValid())
	assert.False(t, SharePreference("").IsValid())
}

func TestToUserOut_OmitsSecrets(t *testing.T) {
	out := ToUserOut(User{
		UUID:            "some-uuid",
		Email:           "alice@example.com",
		Name:            "Alice",
		PasswordHash:    "$2a$10$secret",
		Sub:             "oidc-subject",
		SharePreference: SharePublic,
	})

	assert.Equal(t, "some-uuid", out.ID)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, "public", out.SharePreference)
}

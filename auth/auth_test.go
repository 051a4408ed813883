package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wirefeed/wirefeed/model"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, CheckPassword(hash, "hunter2"))
	require.False(t, CheckPassword(hash, "hunter3"))
	require.False(t, CheckPassword("", "hunter2"))
}

func TestTokenRoundtrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &model.User{Id: 42, Username: "alice"}

	token, err := MintToken(secret, user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserId)
	require.Equal(t, "alice", claims.Username)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken([]byte("other-secret"), token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken(secret, "not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := MintToken(secret, user, -time.Hour)
		require.NoError(t, err)
		_, err = ParseToken(secret, expired)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

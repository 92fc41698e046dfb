package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJWTRoundTrip(t *testing.T) {
	key := []byte("super secret key")

	token, err := GenerateUserJWT("user-1", time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestUserJWTExpired(t *testing.T) {
	key := []byte("super secret key")

	token, err := GenerateUserJWT("user-1", -time.Minute, key)
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, key)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestUserJWTWrongKey(t *testing.T) {
	token, err := GenerateUserJWT("user-1", time.Hour, []byte("super secret key"))
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, []byte("another key"))
	assert.Error(t, err)
}

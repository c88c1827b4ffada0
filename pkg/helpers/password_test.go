package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.True(t, CompareHashAndPassword(hash, "pw"))
	assert.False(t, CompareHashAndPassword(hash, "PW"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "pw"))

	again, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt salts every hash")
}

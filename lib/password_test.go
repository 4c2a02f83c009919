package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", DefaultArgonParams)
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("same input", DefaultArgonParams)
	require.NoError(t, err)
	second, err := HashPassword("same input", DefaultArgonParams)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("pw", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("pw", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestDecodeArgon2Hash(t *testing.T) {
	hash, err := HashPassword("pw", DefaultArgonParams)
	require.NoError(t, err)

	parts, err := DecodeArgon2Hash(hash)
	require.NoError(t, err)
	assert.Equal(t, DefaultArgonParams.Memory, parts.Memory)
	assert.Equal(t, DefaultArgonParams.Time, parts.Time)
	assert.Equal(t, DefaultArgonParams.Threads, parts.Threads)
	assert.Len(t, parts.Salt, int(DefaultArgonParams.SaltLen))
	assert.Len(t, parts.Hash, int(DefaultArgonParams.KeyLen))
}

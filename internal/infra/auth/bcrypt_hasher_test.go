package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("correct horse battery stable", hash))
}

func TestBcryptHasher_SamePasswordDifferentHashes(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	// Each hash carries its own salt, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret", first))
	assert.True(t, hasher.Check("secret", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("secret", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("secret", ""))
}

func TestNewBcryptHasher_ClampsCostFromConfig(t *testing.T) {
	// Out-of-range and missing config both fall back to the bcrypt default.
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

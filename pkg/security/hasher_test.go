package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, hasher.Verify("secret123", hash))
	assert.False(t, hasher.Verify("wrong-password", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	// Same plaintext, different salt, different hash.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("secret123", first))
	assert.True(t, hasher.Verify("secret123", second))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{name: "zero cost falls back to default", cost: 0, expected: DefaultHashCost},
		{name: "negative cost falls back to default", cost: -1, expected: DefaultHashCost},
		{name: "cost above max falls back to default", cost: bcrypt.MaxCost + 1, expected: DefaultHashCost},
		{name: "valid cost is kept", cost: 12, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cost)
			assert.Equal(t, tt.expected, hasher.Cost())
		})
	}
}

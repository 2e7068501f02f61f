package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	require.NotEqual(t, "rahasia-sekali", hashed)

	require.NoError(t, CheckPasswordHash(hashed, "rahasia-sekali"))
	require.Error(t, CheckPasswordHash(hashed, "tebakan"))
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, a, 64) // 32 byte hex

	b, err := GenerateResetToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

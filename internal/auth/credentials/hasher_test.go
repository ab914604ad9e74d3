package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cretpass", hash)
	assert.NoError(t, VerifyPassword(hash, "s3cretpass"))
	assert.Error(t, VerifyPassword(hash, "wrongpass"))
}

func TestHashPasswordRejectsShortPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	second, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

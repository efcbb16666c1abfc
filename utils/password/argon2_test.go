package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Format(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=2,p=4$"))
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("same")
	require.NoError(t, err)
	h2, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerify(t *testing.T) {
	hash, err := Hash("secret-123")
	require.NoError(t, err)

	ok, err := Verify("secret-123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("secret-124", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_InvalidHash(t *testing.T) {
	tests := []string{
		"",
		"plain",
		"$bcrypt$v=19$m=65536,t=2,p=4$c2FsdA$a2V5",
		"$argon2id$v=x$m=65536,t=2,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=2,p=4$!!!$a2V5",
	}
	for _, encoded := range tests {
		t.Run(encoded, func(t *testing.T) {
			_, err := Verify("pw", encoded)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

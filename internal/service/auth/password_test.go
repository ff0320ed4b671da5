package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifierCompare(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	require.NoError(t, verifier.Compare(string(hash), "secret1"))
	require.Error(t, verifier.Compare(string(hash), "secret2"))
	require.Error(t, verifier.Compare("not-a-hash", "secret1"))
}

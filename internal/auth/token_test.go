package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := &TokenIssuer{Secret: []byte("test-secret")}

	tok, err := issuer.Issue("admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sub, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sub)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := &TokenIssuer{Secret: []byte("test-secret")}
	other := &TokenIssuer{Secret: []byte("other-secret")}

	tok, err := issuer.Issue("admin@example.com")
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	issuer := &TokenIssuer{Secret: []byte("test-secret")}
	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{}
	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.True(t, h.Verify("hunter2", hash))
	assert.False(t, h.Verify("hunter3", hash))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRoundTrip(t *testing.T) {
	hash, err := HashAPIKey("secret-key")
	require.NoError(t, err)

	svc := NewService("jwt-secret", hash)
	assert.True(t, svc.Enabled())
	assert.True(t, svc.CheckAPIKey("secret-key"))
	assert.False(t, svc.CheckAPIKey("wrong-key"))
}

func TestDisabledService(t *testing.T) {
	svc := NewService("jwt-secret", "")
	assert.False(t, svc.Enabled())
	assert.False(t, svc.CheckAPIKey("anything"))
}

func TestSessionTokens(t *testing.T) {
	hash, err := HashAPIKey("secret-key")
	require.NoError(t, err)
	svc := NewService("jwt-secret", hash)

	token, clientID, err := svc.NewSession("secret-key")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, clientID)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, got)

	_, _, err = svc.NewSession("wrong-key")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	hash, err := HashAPIKey("secret-key")
	require.NoError(t, err)

	issuer := NewService("jwt-secret", hash)
	token, _, err := issuer.NewSession("secret-key")
	require.NoError(t, err)

	other := NewService("different-secret", hash)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_IssueAndValidateToken(t *testing.T) {
	svc := NewService(Config{SigningKey: "test-secret", Issuer: "clobd", TokenTTL: time.Hour})

	token, err := svc.IssueToken("client-1", "trader")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.ClientID)
	assert.Equal(t, "trader", claims.Role)
	assert.Equal(t, "clobd", claims.Issuer)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()))
}

func TestService_ValidateToken_Malformed(t *testing.T) {
	svc := NewService(Config{SigningKey: "test-secret"})

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestService_ValidateToken_WrongKey(t *testing.T) {
	issuer := NewService(Config{SigningKey: "key-a"})
	verifier := NewService(Config{SigningKey: "key-b"})

	token, err := issuer.IssueToken("client-1", "trader")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

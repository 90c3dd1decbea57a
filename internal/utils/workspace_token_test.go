package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceTokenManager_RoundTrip(t *testing.T) {
	manager := NewWorkspaceTokenManager("test-secret", time.Hour)

	token, err := manager.IssueToken(42, "acme-studio")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ClientID)
	assert.Equal(t, "acme-studio", claims.ClientSlug)
}

func TestWorkspaceTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewWorkspaceTokenManager("secret-a", time.Hour)
	verifier := NewWorkspaceTokenManager("secret-b", time.Hour)

	token, err := issuer.IssueToken(1, "acme")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestWorkspaceTokenManager_RejectsExpired(t *testing.T) {
	manager := NewWorkspaceTokenManager("test-secret", -time.Minute)

	token, err := manager.IssueToken(1, "acme")
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	assert.Error(t, err)
}

func TestWorkspaceTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewWorkspaceTokenManager("test-secret", time.Hour)

	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}

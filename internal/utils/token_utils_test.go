package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestOwnerToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateOwnerToken("owner-1", testSecret, "wallet-test", time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	ownerID, err := ParseOwnerToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)
}

func TestParseOwnerToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateOwnerToken("owner-1", testSecret, "wallet-test", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseOwnerToken_Expired(t *testing.T) {
	token, _, err := GenerateOwnerToken("owner-1", testSecret, "wallet-test", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseOwnerToken_MissingSubject(t *testing.T) {
	token, _, err := GenerateOwnerToken("", testSecret, "wallet-test", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, testSecret)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "edufleex", "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret", "edufleex")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestParseTokenFailures(t *testing.T) {
	token, err := GenerateToken("secret", "edufleex", "alice", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(token, "secret", "someone-else")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken("secret", "edufleex", "alice", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret", "")
	assert.ErrorIs(t, err, ErrExpiredToken)

	noSubject, err := GenerateToken("secret", "edufleex", "", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(noSubject, "secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("garbage", "secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	sid := NewSessionID()
	assert.True(t, strings.HasPrefix(sid, "sess_"))

	token, err := IssueSessionToken("secret", sid)
	require.NoError(t, err)

	got, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueSessionToken("secret", "sess_abc")
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	_, err := ParseSessionToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestTokenLooksExpired(t *testing.T) {
	signed := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
		s, err := token.SignedString([]byte("backend-secret"))
		require.NoError(t, err)
		return s
	}

	assert.True(t, TokenLooksExpired(signed(time.Now().Add(-time.Hour))))
	assert.False(t, TokenLooksExpired(signed(time.Now().Add(time.Hour))))

	// Opaque tokens are not the storefront's to judge.
	assert.False(t, TokenLooksExpired("opaque-session-token"))
	assert.False(t, TokenLooksExpired(""))
}

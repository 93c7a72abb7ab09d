package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Storefront sessions are identified by a signed cookie so a visitor
// keeps the same guest cart across visits without any account.
const sessionLifetime = 30 * 24 * time.Hour

// NewSessionID generates the identity of a fresh storefront session.
func NewSessionID() string {
	return "sess_" + uuid.NewString()
}

// IssueSessionToken signs a session id into a cookie-safe JWT.
func IssueSessionToken(secret, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session cookie and returns the session id.
func ParseSessionToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session token carries no session id")
	}
	return sid, nil
}

// TokenLooksExpired inspects a backend bearer token without verifying
// its signature (the secret belongs to the backend) and reports whether
// its exp claim has passed. Opaque non-JWT tokens report false; the
// backend remains the authority either way.
func TokenLooksExpired(tokenString string) bool {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().Unix() > int64(exp)
}

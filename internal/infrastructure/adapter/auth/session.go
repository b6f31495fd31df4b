package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
)

// SessionCookieName is the cookie that carries the signed session token
const SessionCookieName = "fb_session"

// DefaultSessionTTL bounds how long a login stays valid
const DefaultSessionTTL = 24 * time.Hour

// SessionClaims is the JWT payload for a logged-in user
type SessionClaims struct {
	UserID   uint64 `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed session tokens. Sessions
// are stateless: nothing is stored server side, logout is cookie
// deletion.
type SessionManager struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) (*SessionManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}, nil
}

// TTL returns the configured session lifetime
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for the given user
func (m *SessionManager) Issue(userID uint64, username string) (string, error) {
	now := m.timeProvider.Now()
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns its claims.
// Returns ErrNotAuthenticated for any invalid, expired or tampered token.
func (m *SessionManager) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.timeProvider.Now))
	if err != nil || !token.Valid {
		return nil, errs.ErrNotAuthenticated
	}
	if claims.UserID == 0 {
		return nil, errs.ErrNotAuthenticated
	}
	return claims, nil
}

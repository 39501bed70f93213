package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	sessionerrors "go-leaveflow/internal/session/errors"
)

// Claims carries the user id as subject and the session id as jti.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (c Claims) Identity() Identity {
	var issued time.Time
	if c.IssuedAt != nil {
		issued = c.IssuedAt.Time
	}
	return Identity{
		SessionID: c.ID,
		UserID:    c.Subject,
		Email:     c.Email,
		IssuedAt:  issued,
	}
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Issue(sess Session) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	if !sess.ExpiresAt.IsZero() && sess.ExpiresAt.Before(expiresAt) {
		expiresAt = sess.ExpiresAt
	}

	claims := Claims{
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) Parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, sessionerrors.ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, sessionerrors.ErrTokenExpired
		}
		return nil, sessionerrors.ErrInvalidToken.WithCause(err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, sessionerrors.ErrInvalidToken
	}
	return claims, nil
}

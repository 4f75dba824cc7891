package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/cache"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	sessionIssuer        = "onlinecourse-service"
	revokedSessionPrefix = "session:revoked:"
)

// SessionClaims is the payload of a signed session token
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id carried in the subject claim
func (c *SessionClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidSession
	}
	return uint(id), nil
}

// SessionManager issues HS256 session tokens and tracks revoked ones
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	cache  cache.CacheService
}

func NewSessionManager(secret string, ttl time.Duration, cache cache.CacheService) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		cache:  cache,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session token for user
func (m *SessionManager) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := SessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse verifies the token signature and expiry and rejects revoked tokens
func (m *SessionManager) Parse(ctx context.Context, token string) (*SessionClaims, error) {
	claims, err := m.parseSigned(token)
	if err != nil {
		return nil, err
	}

	revoked, err := m.cache.Exists(ctx, revokedSessionPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke marks the token revoked until its expiry. Invalid or already
// expired tokens need no revocation.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parseSigned(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := m.cache.Set(ctx, revokedSessionPrefix+claims.ID, true, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (m *SessionManager) parseSigned(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !parsed.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

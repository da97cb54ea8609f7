// Package credentials implements password hashing and opaque session tokens.
package credentials

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is applied when no explicit TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// tokenBytes yields 256 bits of entropy per session token.
const tokenBytes = 32

// HashPassword hashes a plaintext password with bcrypt. The returned record
// encodes cost, salt and digest, so verification is self-contained.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored record. It fails
// closed: malformed or tampered records return false, never an error.
func VerifyPassword(password, record string) bool {
	return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
}

// NewSessionToken returns a cryptographically random, URL-safe token.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Store issues and validates sessions against persistent storage. Validation
// hits storage on every call; sessions are never cached in memory.
type Store struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns a credential store backed by the given session repository.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewStore(sessions repository.SessionRepository, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{sessions: sessions, ttl: ttl, now: time.Now}
}

// CreateSession generates a token and persists it with absolute expiry now+ttl.
func (s *Store) CreateSession(ctx context.Context, userID uint) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", models.NewInternalError(err)
	}

	session := &models.Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a token to its user. Expired and unknown tokens are
// indistinguishable: both return a NotFound error. Expiry is checked lazily at
// validation time; no background sweeping happens.
func (s *Store) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewNotFoundError("Session", token)
	}
	return s.sessions.GetUserByToken(ctx, token, s.now())
}

// RevokeSession deletes the session for the given token. Revoking an unknown
// token is a no-op.
func (s *Store) RevokeSession(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

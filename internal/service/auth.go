package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/helpbeacon/helpbeacon/internal/domain"
)

// TokenPrefix identifies session tokens on the wire.
const TokenPrefix = "hbs_"

// SessionStore persists sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Revoke(ctx context.Context, id string) error
}

// SessionService issues and validates session tokens, and mints the
// per-session log tokens that authenticate fire-and-forget log calls.
type SessionService struct {
	store  SessionStore
	secret []byte
}

// NewSessionService creates a SessionService. An empty secret gets
// replaced with a random key, which invalidates outstanding log tokens
// on restart.
func NewSessionService(store SessionStore, secret string) *SessionService {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &SessionService{store: store, secret: key}
}

// GenerateToken creates a new random session token.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return TokenPrefix + hex.EncodeToString(bytes), nil
}

// HashToken returns the SHA-256 hash of a token for at-rest storage.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CreateSession opens a session for a named user under a tenant and
// returns it with the raw token. The raw token is shown exactly once.
func (s *SessionService) CreateSession(ctx context.Context, tenantID int64, userName, role string) (*domain.Session, string, error) {
	if tenantID <= 0 {
		tenantID = domain.DefaultTenantID
	}
	if role == "" {
		role = domain.RoleStaff
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}

	session := &domain.Session{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		UserName:  strings.TrimSpace(userName),
		Role:      role,
		TokenHash: HashToken(token),
	}
	if err := domain.ValidateSession(session); err != nil {
		return nil, "", err
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}
	return session, token, nil
}

// ValidateToken resolves a raw token to its live session.
func (s *SessionService) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	if !strings.HasPrefix(token, TokenPrefix) {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.store.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, domain.ErrSessionRevoked
	}
	return session, nil
}

// ListSessions returns all sessions.
func (s *SessionService) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	return s.store.List(ctx)
}

// RevokeSession revokes a session by ID.
func (s *SessionService) RevokeSession(ctx context.Context, id string) error {
	return s.store.Revoke(ctx, id)
}

// LogToken derives the log token for a session: an HMAC over the
// session ID. Handed to the search box alongside the page and echoed
// back by the log call, it proves the call originated from a page we
// rendered.
func (s *SessionService) LogToken(sessionID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyLogToken checks a log token against a session in constant
// time.
func (s *SessionService) VerifyLogToken(sessionID, token string) bool {
	expected := s.LogToken(sessionID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

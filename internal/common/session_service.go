package common

import (
	"errors"
	"time"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/logging"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionData is the server-side half of a sign-in. Tokens only carry its id.
type SessionData struct {
	SessionID   string    `json:"session_id"`
	PrincipalID string    `json:"principal_id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionService manages principal sessions in the shared cache (Redis or in-memory)
type SessionService struct {
	cache CacheInterface
	ttl   time.Duration
}

func NewSessionService(cache CacheInterface, ttl time.Duration) *SessionService {
	return &SessionService{
		cache: cache,
		ttl:   ttl,
	}
}

func sessionKey(sessionID string) string {
	return string(constants.CachePrefixSession) + sessionID
}

// CreateSession stores a new session for principalID
func (s *SessionService) CreateSession(principalID string) *SessionData {
	now := time.Now()
	session := &SessionData{
		SessionID:   uuid.New().String(),
		PrincipalID: principalID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	s.cache.Set(sessionKey(session.SessionID), session, s.ttl)
	logging.Debug("Session created", "session_id", session.SessionID, "principal_id", principalID)

	return session
}

// GetSession retrieves a live session
func (s *SessionService) GetSession(sessionID string) (*SessionData, error) {
	var session SessionData
	if !s.cache.GetInto(sessionKey(sessionID), &session) {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *SessionService) DeleteSession(sessionID string) {
	s.cache.Delete(sessionKey(sessionID))
}

// Package service holds session state and orchestrates chat turns.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/pkg/logger"
	"github.com/rvrjc/campusbot/pkg/metrics"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu        sync.Mutex
	createdAt time.Time
	updatedAt time.Time
	exchanges []model.Exchange
}

// SessionService keeps chat histories in memory, keyed by session id.
// Histories are lost on restart.
type SessionService struct {
	logger *logger.Logger

	sessions map[string]*session
	mu       sync.RWMutex
}

// NewSessionService creates an empty session store.
func NewSessionService(log *logger.Logger) *SessionService {
	return &SessionService{
		logger:   log,
		sessions: make(map[string]*session),
	}
}

// NewSessionID returns a fresh time-ordered session id.
func NewSessionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Create starts an empty session and returns its id.
func (s *SessionService) Create(ctx context.Context) string {
	id := NewSessionID()
	s.getOrCreate(id)
	return id
}

// History returns a copy of the session's exchanges in order.
func (s *SessionService) History(ctx context.Context, id string) ([]model.Exchange, error) {
	sess, ok := s.get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]model.Exchange, len(sess.exchanges))
	copy(out, sess.exchanges)
	return out, nil
}

// Append adds exchanges to a session, creating it when needed.
func (s *SessionService) Append(ctx context.Context, id string, exchanges ...model.Exchange) {
	sess := s.getOrCreate(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.exchanges = append(sess.exchanges, exchanges...)
	sess.updatedAt = time.Now()
}

// Turn runs fn against the session's history while holding the session lock
// and appends whatever fn returns. Turns on one session are serialized so
// each answer sees the exchanges of the previous one.
func (s *SessionService) Turn(ctx context.Context, id string, fn func(history []model.Exchange) []model.Exchange) {
	sess := s.getOrCreate(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if added := fn(sess.exchanges[:len(sess.exchanges):len(sess.exchanges)]); len(added) > 0 {
		sess.exchanges = append(sess.exchanges, added...)
		sess.updatedAt = time.Now()
	}
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.SessionsActive.Dec()

	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// Count returns the number of sessions held.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *SessionService) getOrCreate(id string) *session {
	if sess, ok := s.get(id); ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	now := time.Now()
	sess := &session{createdAt: now, updatedAt: now}
	s.sessions[id] = sess
	metrics.SessionsActive.Inc()

	s.logger.Debug("session created", zap.String("session_id", id))
	return sess
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxIDAttempts = 8

// SessionStoreOption customizes an InMemorySessionStore.
type SessionStoreOption func(*InMemorySessionStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *InMemorySessionStore) { s.now = now }
}

// WithIDGenerator replaces the random session id generator, for tests.
func WithIDGenerator(gen func() (string, error)) SessionStoreOption {
	return func(s *InMemorySessionStore) { s.newID = gen }
}

// InMemorySessionStore keeps quiz sessions in a map guarded by one mutex.
// A background sweeper started with Start evicts sessions older than the TTL.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.StoredSession

	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	newID    func() (string, error)

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewInMemorySessionStore creates a store whose sessions live for ttl and
// are swept every interval once Start is called.
func NewInMemorySessionStore(ttl, interval time.Duration, opts ...SessionStoreOption) *InMemorySessionStore {
	s := &InMemorySessionStore{
		sessions: make(map[string]domain.StoredSession),
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		newID:    randomSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ domain.QuizSessionStore = (*InMemorySessionStore)(nil)

func randomSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create registers session under a fresh id and returns the id.
func (s *InMemorySessionStore) Create(ctx context.Context, session domain.QuizSession) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", domain.NewInternalError("failed to generate session id", err)
		}
		session.ID = id

		s.mu.Lock()
		if _, taken := s.sessions[id]; taken {
			s.mu.Unlock()
			continue
		}
		s.sessions[id] = domain.StoredSession{Session: session, CreatedAt: s.now()}
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		s.mu.Unlock()
		return id, nil
	}
	return "", domain.NewInternalError(fmt.Sprintf("no free session id after %d attempts", maxIDAttempts), nil)
}

// Consume removes the session and judges selectedCategory against it.
// Expired sessions that the sweeper has not reached yet are treated as gone.
func (s *InMemorySessionStore) Consume(ctx context.Context, id, selectedCategory string) domain.Verdict {
	s.mu.Lock()
	stored, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if !ok || s.expired(stored, s.now()) {
		return domain.UnknownVerdict()
	}
	return domain.Verdict{
		Correct:       selectedCategory == stored.Session.CorrectCategory,
		CorrectAnswer: stored.Session.CorrectCategory,
	}
}

// Sweep evicts every session older than the TTL and returns how many were removed.
func (s *InMemorySessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	removed := 0
	for id, stored := range s.sessions {
		if s.expired(stored, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	// gauge is set under the lock so concurrent updates land in map order
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if removed > 0 {
		metrics.SessionsEvicted.Add(float64(removed))
	}
	return removed
}

func (s *InMemorySessionStore) expired(stored domain.StoredSession, now time.Time) bool {
	return now.Sub(stored.CreatedAt) > s.ttl
}

// Len returns the number of live sessions, expired-but-unswept included.
func (s *InMemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Start launches the sweeper. Calling Start on a running store is a no-op.
func (s *InMemorySessionStore) Start(ctx context.Context) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Stop cancels the sweeper and waits for it to exit.
func (s *InMemorySessionStore) Stop() {
	s.lifecycle.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.lifecycle.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *InMemorySessionStore) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log := logger.Get().With(zap.String("component", "session_sweeper"))
	log.Info("Session sweeper started", zap.Duration("interval", s.interval), zap.Duration("ttl", s.ttl))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Debug("Evicted expired quiz sessions", zap.Int("removed", removed), zap.Int("remaining", s.Len()))
			}
		}
	}
}

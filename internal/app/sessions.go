package app

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-generator/internal/logging"
)

var ErrTooManySessions = errors.New("too many active sessions")

const (
	DefaultMaxSessions = 10000
	sweepInterval      = time.Minute
)

// SessionStore keeps one Shell per browser session, in memory only. Sessions are created on
// the first submission, never on a plain page view.
type SessionStore struct {
	// MaxSessions bounds the live shells; zero means DefaultMaxSessions.
	MaxSessions int

	generator Generator
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.Mutex
	shells    map[string]*Shell
	lastSweep time.Time
}

func NewSessionStore(gen Generator, ttl time.Duration, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		MaxSessions: DefaultMaxSessions,
		generator:   gen,
		ttl:         ttl,
		logger:      logging.OrNop(logger),
		now:         time.Now,
		shells:      make(map[string]*Shell),
		lastSweep:   time.Now(),
	}
}

// Lookup returns the shell for an existing session without creating one.
func (st *SessionStore) Lookup(id string) (*Shell, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked(false)
	if id == "" {
		return nil, false
	}
	shell, ok := st.shells[id]
	return shell, ok
}

// Get returns the shell for id, creating a new session (with a new id) when id is unknown.
// It fails with ErrTooManySessions when the store is full of sessions that cannot be evicted.
func (st *SessionStore) Get(id string) (string, *Shell, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked(false)
	if shell, ok := st.shells[id]; ok && id != "" {
		return id, shell, nil
	}

	if len(st.shells) >= st.maxSessions() {
		st.sweepLocked(true)
	}
	for len(st.shells) >= st.maxSessions() {
		if !st.evictOldestLocked() {
			st.logger.Warn("⚠️ session limit reached", zap.Int("sessions", len(st.shells)))
			return "", nil, ErrTooManySessions
		}
	}

	id = uuid.NewString()
	shell := NewShell(st.generator, st.logger.With(zap.String("session", id)))
	st.shells[id] = shell
	return id, shell, nil
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.shells)
}

func (st *SessionStore) maxSessions() int {
	if st.MaxSessions <= 0 {
		return DefaultMaxSessions
	}
	return st.MaxSessions
}

// sweepLocked drops sessions idle past the TTL, at most once per sweepInterval unless forced.
// A session with a generation in flight is kept.
func (st *SessionStore) sweepLocked(force bool) {
	if st.ttl <= 0 {
		return
	}
	now := st.now()
	if !force && now.Sub(st.lastSweep) < sweepInterval {
		return
	}
	st.lastSweep = now

	cutoff := now.Add(-st.ttl)
	for id, shell := range st.shells {
		loading, lastSeen := shell.activity()
		if !loading && lastSeen.Before(cutoff) {
			delete(st.shells, id)
		}
	}
}

// evictOldestLocked drops the least recently seen idle session.
func (st *SessionStore) evictOldestLocked() bool {
	var (
		oldestID   string
		oldestSeen time.Time
	)
	for id, shell := range st.shells {
		loading, lastSeen := shell.activity()
		if loading {
			continue
		}
		if oldestID == "" || lastSeen.Before(oldestSeen) {
			oldestID, oldestSeen = id, lastSeen
		}
	}
	if oldestID == "" {
		return false
	}
	delete(st.shells, oldestID)
	return true
}

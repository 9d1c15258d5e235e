package study

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"github.com/smith3v/scripture-vocab/pkg/srs"
)

const (
	DefaultInactivityTimeout = 30 * time.Minute
	SessionSweeperInterval   = time.Minute
)

// Manager keeps one active session per word list and ends sessions that sit
// idle past the inactivity timeout.
type Manager struct {
	corpus  *corpus.Corpus
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(c *corpus.Corpus, timeout time.Duration, now func() time.Time) *Manager {
	if timeout <= 0 {
		timeout = DefaultInactivityTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		corpus:   c,
		timeout:  timeout,
		now:      now,
		sessions: make(map[string]*Session),
	}
}

// Start opens a session for listID. A session already open for the list is
// ended first.
func (m *Manager) Start(ctx context.Context, listID, sourceID string) *Session {
	now := m.now()
	session := NewSession(m.corpus, sourceID, now)
	session.listID = listID

	m.mu.Lock()
	previous := m.sessions[listID]
	m.sessions[listID] = session
	m.mu.Unlock()

	if previous != nil {
		if _, err := previous.End(ctx, now, db.EndedReasonFinished); err != nil {
			logger.Error("failed to end replaced session", "list_id", listID, "error", err)
		}
	}
	logger.Info("study session started", "session_id", session.ID(), "list_id", listID, "source", session.sourceID)
	return session
}

func (m *Manager) Get(listID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[listID]
}

func (m *Manager) Touch(listID string) {
	if session := m.Get(listID); session != nil {
		session.Touch(m.now())
	}
}

// RecordAnswer records on the list's active session, starting one with the
// app source if none is open. A session closed elsewhere is replaced by a new
// one with the same source.
func (m *Manager) RecordAnswer(ctx context.Context, listID, wordID string, answer srs.Answer) (db.VocabWord, db.StudySessionEntry, error) {
	session := m.Get(listID)
	if session == nil {
		session = m.Start(ctx, listID, "")
	}
	word, entry, err := session.RecordAnswer(ctx, wordID, answer, m.now())
	if !errors.Is(err, ErrSessionEnded) {
		return word, entry, err
	}

	m.mu.Lock()
	if m.sessions[listID] == session {
		delete(m.sessions, listID)
	}
	m.mu.Unlock()
	session = m.Start(ctx, listID, session.sourceID)
	return session.RecordAnswer(ctx, wordID, answer, m.now())
}

// End closes the list's session. It returns ErrSessionEnded when no session
// is open.
func (m *Manager) End(ctx context.Context, listID, reason string) (db.StudySession, error) {
	m.mu.Lock()
	session := m.sessions[listID]
	delete(m.sessions, listID)
	m.mu.Unlock()
	if session == nil {
		return db.StudySession{}, ErrSessionEnded
	}
	return session.End(ctx, m.now(), reason)
}

func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SessionSweeperInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepInactive(ctx, m.now())
		}
	}
}

// SweepInactive ends every session idle for longer than the timeout and
// returns how many were ended.
func (m *Manager) SweepInactive(ctx context.Context, now time.Time) int {
	var stale []*Session
	m.mu.Lock()
	for listID, session := range m.sessions {
		if session == nil {
			delete(m.sessions, listID)
			continue
		}
		if now.Sub(session.LastActivityAt()) > m.timeout {
			delete(m.sessions, listID)
			stale = append(stale, session)
		}
	}
	m.mu.Unlock()

	for _, session := range stale {
		if _, err := session.End(ctx, now, db.EndedReasonInactive); err != nil {
			logger.Error("failed to end inactive session", "session_id", session.ID(), "error", err)
		}
	}
	return len(stale)
}

// Shutdown ends every open session.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	now := m.now()
	for listID, session := range sessions {
		if _, err := session.End(ctx, now, db.EndedReasonFinished); err != nil {
			logger.Error("failed to end session on shutdown", "list_id", listID, "error", err)
		}
	}
}

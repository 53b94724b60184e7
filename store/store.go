// Package store owns conversation state for the teacher pipeline: an
// in-memory, capacity- and TTL-bounded mapping from session id to session.
//
// Expiry is lazy: it is checked on every access and as a cleanup pass at
// creation time, never by a background sweep the store depends on. Missing
// or expired sessions are signalled through boolean returns, never errors.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	// DefaultSessionTimeout is the idle time after which a session expires.
	DefaultSessionTimeout = 30 * time.Minute
	// DefaultMaxSessions is the default session capacity.
	DefaultMaxSessions = 100
)

// Store is the process-wide session registry. Safe for concurrent use:
// a single mutex held briefly per operation serializes read-modify-write
// sequences against any one session, while keeping operations on
// different sessions from observing partial updates.
type Store struct {
	mu sync.Mutex

	sessions       map[string]*Session
	sessionTimeout time.Duration
	maxSessions    int
}

// New creates a session store. Non-positive arguments fall back to defaults.
func New(maxSessions int, sessionTimeout time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if sessionTimeout <= 0 {
		sessionTimeout = DefaultSessionTimeout
	}
	return &Store{
		sessions:       make(map[string]*Session),
		sessionTimeout: sessionTimeout,
		maxSessions:    maxSessions,
	}
}

// Create makes a new session and returns its id. It runs the expiry
// cleanup pass first and, if still at capacity, evicts the single session
// with the oldest creation time (strictly creation order, not LRU).
func (s *Store) Create(metadata Metadata) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked()

	if len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}

	now := time.Now()
	sess := &Session{
		ID:             shortuuid.New(),
		CreatedAt:      now,
		LastActivityAt: now,
		Messages:       []Message{},
		Metadata:       cloneMetadata(metadata),
	}
	s.sessions[sess.ID] = sess

	return sess.ID
}

// Get returns a snapshot of the session and refreshes its activity time.
// An expired session is deleted as a side effect and reported as absent.
func (s *Store) Get(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return Session{}, false
	}
	return snapshot(sess), true
}

// AppendUserMessage appends a user turn. Returns false if the session is
// absent or expired.
func (s *Store) AppendUserMessage(sessionID, content, language string, metadata Metadata) bool {
	return s.appendMessage(sessionID, RoleUser, content, language, metadata)
}

// AppendAssistantMessage appends an assistant turn. Returns false if the
// session is absent or expired.
func (s *Store) AppendAssistantMessage(sessionID, content, language string, metadata Metadata) bool {
	return s.appendMessage(sessionID, RoleAssistant, content, language, metadata)
}

// AppendExchange appends a user message followed by an assistant message.
// If the user append succeeds but the session disappears before the
// assistant append, the result is false while the user message remains
// persisted. The asymmetry is deliberate and documented rather than
// rolled back.
func (s *Store) AppendExchange(sessionID, userContent, assistantContent, language string, metadata Metadata) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return false
	}
	sess.append(RoleUser, userContent, language, metadata)

	sess, ok = s.getLocked(sessionID)
	if !ok {
		return false
	}
	sess.append(RoleAssistant, assistantContent, language, metadata)
	return true
}

// History returns all messages of the session in insertion order, or an
// empty slice if the session is absent or expired.
func (s *Store) History(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return []Message{}
	}
	out := make([]Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

// RecentContentWindow returns the content of the last maxCount messages,
// oldest first. Used to seed prompt context.
func (s *Store) RecentContentWindow(sessionID string, maxCount int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok || maxCount <= 0 {
		return nil
	}

	msgs := sess.Messages
	if len(msgs) > maxCount {
		msgs = msgs[len(msgs)-maxCount:]
	}
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Content)
	}
	return out
}

// Clear empties the session's messages while keeping the session alive,
// refreshing its activity time.
func (s *Store) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return false
	}
	sess.Messages = sess.Messages[:0]
	sess.LastActivityAt = time.Now()
	return true
}

// End removes the session unconditionally, with no expiry check.
func (s *Store) End(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// Summary returns the session's summary without refreshing activity.
func (s *Store) Summary(sessionID string) (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return Summary{}, false
	}
	return sess.summary(time.Now(), s.sessionTimeout), true
}

// ListActive runs the cleanup pass and returns summaries of the
// remaining, non-expired sessions.
func (s *Store) ListActive() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked()

	now := time.Now()
	out := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.summary(now, s.sessionTimeout))
	}
	return out
}

// Stats runs the cleanup pass and aggregates counters over the live sessions.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked()

	stats := Stats{TotalSessions: len(s.sessions)}
	seen := make(map[string]struct{})
	for _, sess := range s.sessions {
		stats.TotalMessages += len(sess.Messages)
		for _, lang := range sess.languages() {
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			stats.LanguagesUsed = append(stats.LanguagesUsed, lang)
		}
	}
	if stats.TotalSessions > 0 {
		stats.AvgMessagesPerSession = float64(stats.TotalMessages) / float64(stats.TotalSessions)
	}
	return stats
}

// Size returns the number of sessions currently held, expired or not.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired removes all expired sessions immediately and returns
// the number removed. The store never depends on this being called; it
// exists for the optional janitor job.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupExpiredLocked()
}

func (s *Store) appendMessage(sessionID string, role Role, content, language string, metadata Metadata) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.getLocked(sessionID)
	if !ok {
		return false
	}
	sess.append(role, content, language, metadata)
	return true
}

// getLocked looks up a live session, deleting it if expired and
// refreshing its activity time otherwise. Lock must be held.
func (s *Store) getLocked(sessionID string) (*Session, bool) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}

	now := time.Now()
	if sess.expired(now, s.sessionTimeout) {
		delete(s.sessions, sessionID)
		return nil, false
	}

	sess.LastActivityAt = now
	return sess, true
}

// cleanupExpiredLocked removes every expired session. Lock must be held.
func (s *Store) cleanupExpiredLocked() int {
	now := time.Now()
	var expired []string
	for id, sess := range s.sessions {
		if sess.expired(now, s.sessionTimeout) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(s.sessions, id)
	}
	if len(expired) > 0 {
		slog.Debug("cleaned up expired sessions", "count", len(expired))
	}
	return len(expired)
}

// evictOldestLocked removes the session with the oldest creation time.
// Ties are broken arbitrarily. Lock must be held.
func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.CreatedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = sess.CreatedAt
		}
	}
	if oldestID == "" {
		return
	}
	delete(s.sessions, oldestID)
	slog.Info("evicted oldest session at capacity", "session_id", oldestID)
}

// snapshot copies a session so callers never share the store's internal state.
func snapshot(sess *Session) Session {
	out := *sess
	out.Messages = make([]Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	out.Metadata = cloneMetadata(sess.Metadata)
	return out
}

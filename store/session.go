package store

import (
	"time"
)

// Session is one conversation: an ordered sequence of messages plus
// activity timestamps. Sessions are owned exclusively by the Store and
// must only be touched while holding its lock.
type Session struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Messages       []Message `json:"messages"`
	Metadata       Metadata  `json:"metadata,omitempty"`
}

// Summary is a read-only projection of a session.
type Summary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	TotalMessages  int       `json:"total_messages"`
	LanguagesUsed  []string  `json:"languages_used"`
	Active         bool      `json:"active"`
}

// Stats aggregates counters across all live sessions.
type Stats struct {
	TotalSessions         int      `json:"total_sessions"`
	TotalMessages         int      `json:"total_messages"`
	LanguagesUsed         []string `json:"languages_used"`
	AvgMessagesPerSession float64  `json:"avg_messages_per_session"`
}

// append adds a message and refreshes activity. Lock must be held.
func (s *Session) append(role Role, content, language string, metadata Metadata) string {
	msg := newMessage(role, content, language, metadata)
	s.Messages = append(s.Messages, msg)
	s.LastActivityAt = time.Now()
	return msg.ID
}

// expired reports whether the session has been idle for at least timeout.
func (s *Session) expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivityAt) >= timeout
}

// languages returns the distinct language codes used, in first-use order.
func (s *Session) languages() []string {
	seen := make(map[string]struct{}, 2)
	var out []string
	for _, msg := range s.Messages {
		if _, ok := seen[msg.Language]; ok {
			continue
		}
		seen[msg.Language] = struct{}{}
		out = append(out, msg.Language)
	}
	return out
}

// summary builds a Summary snapshot. Lock must be held.
func (s *Session) summary(now time.Time, timeout time.Duration) Summary {
	return Summary{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		TotalMessages:  len(s.Messages),
		LanguagesUsed:  s.languages(),
		Active:         !s.expired(now, timeout),
	}
}

package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenGet(t *testing.T) {
	s := New(10, time.Minute)

	id := s.Create(Metadata{"origin": "test"})
	require.NotEmpty(t, id)

	sess, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, sess.ID)
	assert.Empty(t, sess.Messages)
	assert.Equal(t, Metadata{"origin": "test"}, sess.Metadata)
	// Get refreshes activity, so the two stay within clock resolution.
	assert.WithinDuration(t, sess.CreatedAt, sess.LastActivityAt, 100*time.Millisecond)
	assert.False(t, sess.LastActivityAt.Before(sess.CreatedAt))
}

func TestGetAbsent(t *testing.T) {
	s := New(10, time.Minute)

	_, ok := s.Get("no-such-session")
	assert.False(t, ok)
}

func TestCapacityEviction(t *testing.T) {
	s := New(3, time.Minute)

	first := s.Create(nil)
	time.Sleep(2 * time.Millisecond)
	second := s.Create(nil)
	time.Sleep(2 * time.Millisecond)
	third := s.Create(nil)

	fourth := s.Create(nil)

	assert.Equal(t, 3, s.Size())
	_, ok := s.Get(first)
	assert.False(t, ok, "oldest-created session should be evicted")
	for _, id := range []string{second, third, fourth} {
		_, ok := s.Get(id)
		assert.True(t, ok)
	}
}

func TestExpiryOnAccess(t *testing.T) {
	s := New(10, 10*time.Millisecond)

	id := s.Create(nil)
	time.Sleep(25 * time.Millisecond)

	_, ok := s.Get(id)
	assert.False(t, ok)
	// Fully removed, not just hidden.
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Size())
}

func TestGetRefreshesActivity(t *testing.T) {
	s := New(10, 30*time.Millisecond)

	id := s.Create(nil)
	for i := 0; i < 4; i++ {
		time.Sleep(15 * time.Millisecond)
		_, ok := s.Get(id)
		require.True(t, ok, "repeated access keeps the session alive")
	}
}

func TestAppendMessages(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)

	assert.True(t, s.AppendUserMessage(id, "what is gravity?", "en", Metadata{"confidence": "0.9"}))
	assert.True(t, s.AppendAssistantMessage(id, "Gravity is a force.", "en", nil))

	history := s.History(id)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, "what is gravity?", history[0].Content)
	assert.NotEmpty(t, history[0].ID)
	assert.NotEqual(t, history[0].ID, history[1].ID)
	assert.Equal(t, Metadata{"confidence": "0.9"}, history[0].Metadata)
}

func TestAppendToAbsentSession(t *testing.T) {
	s := New(10, time.Minute)

	assert.False(t, s.AppendUserMessage("missing", "hello", "en", nil))
	assert.False(t, s.AppendAssistantMessage("missing", "hello", "en", nil))
	assert.False(t, s.AppendExchange("missing", "q", "a", "en", nil))
}

func TestAppendExchange(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)

	require.True(t, s.AppendExchange(id, "प्रश्न", "उत्तर", "hi", nil))

	history := s.History(id)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "प्रश्न", history[0].Content)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, "उत्तर", history[1].Content)
	assert.Equal(t, "hi", history[0].Language)
	assert.Equal(t, "hi", history[1].Language)
}

func TestRecentContentWindow(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)

	for i := 1; i <= 5; i++ {
		s.AppendUserMessage(id, fmt.Sprintf("message %d", i), "en", nil)
	}

	window := s.RecentContentWindow(id, 3)
	assert.Equal(t, []string{"message 3", "message 4", "message 5"}, window)

	assert.Nil(t, s.RecentContentWindow("missing", 3))
	assert.Nil(t, s.RecentContentWindow(id, 0))
}

func TestClearKeepsSessionAlive(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)
	s.AppendUserMessage(id, "hello", "en", nil)

	assert.True(t, s.Clear(id))
	assert.Empty(t, s.History(id))

	_, ok := s.Get(id)
	assert.True(t, ok)

	assert.False(t, s.Clear("missing"))
}

func TestEnd(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)

	assert.True(t, s.End(id))
	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.False(t, s.End(id))
}

func TestListActiveSkipsExpired(t *testing.T) {
	s := New(10, 20*time.Millisecond)

	stale := s.Create(nil)
	time.Sleep(30 * time.Millisecond)
	fresh := s.Create(nil)

	active := s.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, fresh, active[0].ID)
	assert.True(t, active[0].Active)

	_, ok := s.Get(stale)
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	s := New(10, time.Minute)

	a := s.Create(nil)
	b := s.Create(nil)
	s.AppendExchange(a, "q1", "a1", "en", nil)
	s.AppendExchange(b, "q2", "a2", "hi", nil)
	s.AppendUserMessage(b, "q3", "te", nil)

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 5, stats.TotalMessages)
	assert.ElementsMatch(t, []string{"en", "hi", "te"}, stats.LanguagesUsed)
	assert.InDelta(t, 2.5, stats.AvgMessagesPerSession, 0.001)
}

func TestStatsEmpty(t *testing.T) {
	s := New(10, time.Minute)

	stats := s.Stats()
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0, stats.TotalMessages)
	assert.Zero(t, stats.AvgMessagesPerSession)
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(Metadata{"k": "v"})
	s.AppendUserMessage(id, "original", "en", nil)

	sess, ok := s.Get(id)
	require.True(t, ok)
	sess.Messages[0].Content = "mutated"
	sess.Metadata["k"] = "mutated"

	history := s.History(id)
	assert.Equal(t, "original", history[0].Content)
	fresh, _ := s.Get(id)
	assert.Equal(t, "v", fresh.Metadata["k"])
}

func TestConcurrentAppends(t *testing.T) {
	s := New(10, time.Minute)
	id := s.Create(nil)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.AppendUserMessage(id, fmt.Sprintf("w%d-%d", w, i), "en", nil)
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, s.History(id), writers*perWriter)
}

func TestConcurrentCreateRespectsCapacity(t *testing.T) {
	s := New(16, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, s.Size())
}

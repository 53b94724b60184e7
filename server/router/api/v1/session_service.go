package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahayak-ai/sahayak/store"
)

// CreateSessionResponse carries the id of a newly started conversation.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// SessionListResponse wraps the active session summaries.
type SessionListResponse struct {
	Sessions []store.Summary `json:"sessions"`
	Total    int             `json:"total"`
}

// SessionMessagesResponse wraps a session's message history.
type SessionMessagesResponse struct {
	SessionID string          `json:"session_id"`
	Messages  []store.Message `json:"messages"`
}

// CreateSession starts a new conversation.
// POST /api/v1/sessions
func (s *APIV1Service) CreateSession(c echo.Context) error {
	id := s.Store.Create(nil)
	return c.JSON(http.StatusCreated, CreateSessionResponse{SessionID: id})
}

// ListSessions lists active (non-expired) sessions.
// GET /api/v1/sessions
func (s *APIV1Service) ListSessions(c echo.Context) error {
	summaries := s.Store.ListActive()
	return c.JSON(http.StatusOK, SessionListResponse{Sessions: summaries, Total: len(summaries)})
}

// GetSession returns one session's summary.
// GET /api/v1/sessions/:id
func (s *APIV1Service) GetSession(c echo.Context) error {
	summary, ok := s.Store.Summary(c.Param("id"))
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetSessionMessages returns a session's full history.
// GET /api/v1/sessions/:id/messages
func (s *APIV1Service) GetSessionMessages(c echo.Context) error {
	id := c.Param("id")
	if _, ok := s.Store.Get(id); !ok {
		return sessionNotFound(c)
	}
	return c.JSON(http.StatusOK, SessionMessagesResponse{
		SessionID: id,
		Messages:  s.Store.History(id),
	})
}

// ClearSession empties a session's history but keeps it alive.
// POST /api/v1/sessions/:id/clear
func (s *APIV1Service) ClearSession(c echo.Context) error {
	if !s.Store.Clear(c.Param("id")) {
		return sessionNotFound(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// EndSession removes a session entirely.
// DELETE /api/v1/sessions/:id
func (s *APIV1Service) EndSession(c echo.Context) error {
	if !s.Store.End(c.Param("id")) {
		return sessionNotFound(c)
	}
	return c.NoContent(http.StatusNoContent)
}

func sessionNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
}

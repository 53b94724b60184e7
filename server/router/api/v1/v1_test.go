package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahayak-ai/sahayak/internal/profile"
	"github.com/sahayak-ai/sahayak/plugin/langdetect"
	"github.com/sahayak-ai/sahayak/plugin/llm"
	"github.com/sahayak-ai/sahayak/plugin/prompt"
	"github.com/sahayak-ai/sahayak/server/service/teacher"
	"github.com/sahayak-ai/sahayak/store"
)

type stubGenerator struct {
	reply string
}

func (g *stubGenerator) Generate(context.Context, string, string, float32, int) (string, error) {
	return g.reply, nil
}

func (g *stubGenerator) Info() llm.ModelInfo {
	return llm.ModelInfo{ModelName: "stub-model", Provider: "Gemini", APIKeyConfigured: true}
}

func newTestAPI(reply string) (*echo.Echo, *APIV1Service) {
	sessions := store.New(10, time.Minute)
	svc := teacher.NewService(langdetect.New(), prompt.NewBuilder(), &stubGenerator{reply: reply}, sessions, teacher.Options{})

	api := NewAPIV1Service(&profile.Profile{Mode: "dev", Version: "test"}, svc, sessions)
	e := echo.New()
	api.Register(e)
	return e, api
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAskTeacher(t *testing.T) {
	e, _ := newTestAPI("Gravity is a force.")

	rec := doJSON(e, http.MethodPost, "/api/v1/teacher/ask", `{"text":"What is gravity?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp teacher.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, langdetect.English, resp.Language)
	assert.Equal(t, "Gravity is a force.", resp.RawResponse)
	assert.NotEmpty(t, resp.SessionID)
	assert.Empty(t, resp.ErrorKind)
}

func TestAskTeacherIncludesFormattedText(t *testing.T) {
	e, _ := newTestAPI("1. Definition:\nGravity is a force.\n2. Examples:\nA falling apple.")

	rec := doJSON(e, http.MethodPost, "/api/v1/teacher/ask", `{"text":"What is gravity?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Formatted, "Definition: Gravity is a force.")
	assert.Contains(t, resp.Formatted, "1. A falling apple.")
}

func TestAskTeacherRateLimited(t *testing.T) {
	e, _ := newTestAPI("answer")

	// The default per-IP bucket holds 10 tokens; the 11th burst request
	// must be rejected.
	last := http.StatusOK
	for i := 0; i < 11; i++ {
		rec := doJSON(e, http.MethodGet, "/api/v1/greeting", "")
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestAskTeacherContinuesSession(t *testing.T) {
	e, _ := newTestAPI("answer")

	rec := doJSON(e, http.MethodPost, "/api/v1/teacher/ask", `{"text":"What is gravity?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var first teacher.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doJSON(e, http.MethodPost, "/api/v1/teacher/ask",
		`{"text":"And on the moon?","session_id":"`+first.SessionID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var second teacher.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestAskTeacherRejectsMissingText(t *testing.T) {
	e, _ := newTestAPI("unused")

	rec := doJSON(e, http.MethodPost, "/api/v1/teacher/ask", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/teacher/ask", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGreeting(t *testing.T) {
	e, _ := newTestAPI("unused")

	rec := doJSON(e, http.MethodGet, "/api/v1/greeting?lang=hi", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GreetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, langdetect.Hindi, resp.Language)
	assert.Contains(t, resp.Greeting, "नमस्ते!")

	// Unknown languages degrade to English.
	rec = doJSON(e, http.MethodGet, "/api/v1/greeting?lang=fr", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, langdetect.English, resp.Language)
}

func TestGetModelInfo(t *testing.T) {
	e, _ := newTestAPI("unused")

	rec := doJSON(e, http.MethodGet, "/api/v1/model", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info llm.ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "stub-model", info.ModelName)
}

func TestSessionLifecycle(t *testing.T) {
	e, _ := newTestAPI("answer")

	rec := doJSON(e, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)

	// Ask a question in the session so it has history.
	rec = doJSON(e, http.MethodPost, "/api/v1/teacher/ask",
		`{"text":"What is gravity?","session_id":"`+created.SessionID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/sessions/"+created.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalMessages)
	assert.True(t, summary.Active)

	rec = doJSON(e, http.MethodGet, "/api/v1/sessions/"+created.SessionID+"/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var messages SessionMessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages.Messages, 2)
	assert.Equal(t, store.RoleUser, messages.Messages[0].Role)

	rec = doJSON(e, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/clear", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/v1/sessions/"+created.SessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/sessions/"+created.SessionID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionNotFound(t *testing.T) {
	e, _ := newTestAPI("unused")

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/sessions/missing"},
		{http.MethodGet, "/api/v1/sessions/missing/messages"},
		{http.MethodPost, "/api/v1/sessions/missing/clear"},
		{http.MethodDelete, "/api/v1/sessions/missing"},
	} {
		rec := doJSON(e, probe.method, probe.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, probe.path)
	}
}

func TestListSessions(t *testing.T) {
	e, api := newTestAPI("unused")
	api.Store.Create(nil)
	api.Store.Create(nil)

	rec := doJSON(e, http.MethodGet, "/api/v1/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Sessions, 2)
}

func TestGetStats(t *testing.T) {
	e, api := newTestAPI("unused")
	id := api.Store.Create(nil)
	api.Store.AppendUserMessage(id, "hello", langdetect.English, nil)

	rec := doJSON(e, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalSessions)
	assert.Equal(t, 1, resp.TotalMessages)
	assert.Equal(t, []string{"en", "hi", "te"}, resp.SupportedLanguages)
}

func TestGetHealth(t *testing.T) {
	e, _ := newTestAPI("unused")

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "dev", resp.Mode)
	assert.Nil(t, resp.ModelConnected)

	// Generators without a connection probe report as connected.
	rec = doJSON(e, http.MethodGet, "/healthz?check=model", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ModelConnected)
	assert.True(t, *resp.ModelConnected)
}

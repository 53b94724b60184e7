package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	// Burst of two, then the bucket is dry.
	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))

	// Keys are independent.
	assert.True(t, rl.Allow("other"))
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	handler := RateLimit(NewRateLimiter(1, 1))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func() (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		return rec, handler(e.NewContext(req, rec))
	}

	rec, err := do()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = do()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

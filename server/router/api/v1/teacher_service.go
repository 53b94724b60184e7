package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
	"github.com/sahayak-ai/sahayak/server/service/teacher"
)

// GreetingResponse carries a localized greeting.
type GreetingResponse struct {
	Language string `json:"language"`
	Greeting string `json:"greeting"`
}

// AskResponse is the structured reply plus its plain-text rendering.
type AskResponse struct {
	*teacher.Response
	Formatted string `json:"formatted"`
}

// AskTeacher answers one question.
// POST /api/v1/teacher/ask
func (s *APIV1Service) AskTeacher(c echo.Context) error {
	var req teacher.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}

	resp := s.Teacher.HandleQuestion(c.Request().Context(), req)
	body := AskResponse{Response: resp, Formatted: teacher.FormatForDisplay(resp)}

	// Degraded replies are still well-formed responses; only empty input is
	// the caller's fault.
	if resp.ErrorKind == teacher.ErrorKindEmptyInput {
		return c.JSON(http.StatusBadRequest, body)
	}
	return c.JSON(http.StatusOK, body)
}

// GetGreeting returns the assistant greeting in the requested language.
// GET /api/v1/greeting?lang=hi
func (s *APIV1Service) GetGreeting(c echo.Context) error {
	lang := langdetect.Coerce(c.QueryParam("lang"))
	return c.JSON(http.StatusOK, GreetingResponse{
		Language: lang,
		Greeting: s.Teacher.Greet(lang),
	})
}

// GetModelInfo describes the backing model.
// GET /api/v1/model
func (s *APIV1Service) GetModelInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Teacher.ModelInfo())
}

package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
	"github.com/sahayak-ai/sahayak/store"
)

// HealthResponse reports service liveness and, on request, provider
// connectivity.
type HealthResponse struct {
	Status         string `json:"status"`
	Mode           string `json:"mode"`
	Version        string `json:"version"`
	ModelConnected *bool  `json:"model_connected,omitempty"`
}

// StatsResponse aggregates session counters and the supported languages.
type StatsResponse struct {
	store.Stats
	SupportedLanguages []string `json:"supported_languages"`
}

// GetHealth is the liveness probe. `?check=model` additionally probes the
// provider, which costs one generation.
// GET /healthz
func (s *APIV1Service) GetHealth(c echo.Context) error {
	resp := HealthResponse{
		Status:  "ok",
		Mode:    s.Profile.Mode,
		Version: s.Profile.Version,
	}
	if c.QueryParam("check") == "model" {
		connected := s.Teacher.CheckModel(c.Request().Context())
		resp.ModelConnected = &connected
		if !connected {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetStats reports aggregate session statistics.
// GET /api/v1/stats
func (s *APIV1Service) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Stats:              s.Store.Stats(),
		SupportedLanguages: langdetect.SupportedCodes(),
	})
}

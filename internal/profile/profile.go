// Package profile holds the runtime configuration for the sahayak server.
package profile

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev".
	Mode string
	// Addr is the binding address for the server.
	Addr string
	// Port is the binding port for the server.
	Port int
	// Version is the current version of the server.
	Version string

	// Model provider configuration.
	APIKey  string // SAHAYAK_API_KEY (legacy: GEMINI_API_KEY, GOOGLE_API_KEY)
	Model   string // SAHAYAK_MODEL (default: gemini-1.5-flash)
	BaseURL string // SAHAYAK_BASE_URL (default: Gemini OpenAI-compatible endpoint)

	// Request orchestration configuration.
	MaxRetries          int           // SAHAYAK_MAX_RETRIES (default: 3)
	RetryBaseDelay      time.Duration // SAHAYAK_RETRY_BASE_DELAY (default: 1s)
	SessionTimeout      time.Duration // SAHAYAK_SESSION_TIMEOUT (default: 30m)
	MaxSessions         int           // SAHAYAK_MAX_SESSIONS (default: 100)
	ConfidenceThreshold float64       // SAHAYAK_CONFIDENCE_THRESHOLD (default: 0.8)
	ContextWindow       int           // SAHAYAK_CONTEXT_WINDOW (default: 3)
	MaxInputLength      int           // SAHAYAK_MAX_INPUT_LENGTH (default: 1000)
}

// DefaultBaseURL is the Gemini OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// FromEnv loads configuration from SAHAYAK_* environment variables.
func FromEnv(version string) *Profile {
	v := viper.New()
	v.SetEnvPrefix("sahayak")
	v.AutomaticEnv()

	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 8321)
	v.SetDefault("model", "gemini-1.5-flash")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("max_retries", 3)
	v.SetDefault("retry_base_delay", time.Second)
	v.SetDefault("session_timeout", 30*time.Minute)
	v.SetDefault("max_sessions", 100)
	v.SetDefault("confidence_threshold", 0.8)
	v.SetDefault("context_window", 3)
	v.SetDefault("max_input_length", 1000)

	p := &Profile{
		Mode:                v.GetString("mode"),
		Addr:                v.GetString("addr"),
		Port:                v.GetInt("port"),
		Version:             version,
		APIKey:              v.GetString("api_key"),
		Model:               v.GetString("model"),
		BaseURL:             v.GetString("base_url"),
		MaxRetries:          v.GetInt("max_retries"),
		RetryBaseDelay:      v.GetDuration("retry_base_delay"),
		SessionTimeout:      v.GetDuration("session_timeout"),
		MaxSessions:         v.GetInt("max_sessions"),
		ConfidenceThreshold: v.GetFloat64("confidence_threshold"),
		ContextWindow:       v.GetInt("context_window"),
		MaxInputLength:      v.GetInt("max_input_length"),
	}

	// Legacy env vars from the original deployment keep working.
	if p.APIKey == "" {
		for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
			legacy := viper.New()
			legacy.AutomaticEnv()
			if val := legacy.GetString(key); val != "" {
				p.APIKey = val
				break
			}
		}
	}

	return p
}

// Validate checks the profile for invalid values and applies fallbacks.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.MaxRetries < 0 {
		return errors.Errorf("max retries must be non-negative, got %d", p.MaxRetries)
	}
	if p.RetryBaseDelay <= 0 {
		p.RetryBaseDelay = time.Second
	}
	if p.SessionTimeout <= 0 {
		p.SessionTimeout = 30 * time.Minute
	}
	if p.MaxSessions <= 0 {
		p.MaxSessions = 100
	}
	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return errors.Errorf("confidence threshold must be in [0,1], got %f", p.ConfidenceThreshold)
	}
	if p.ContextWindow <= 0 {
		p.ContextWindow = 3
	}
	if p.MaxInputLength <= 0 {
		p.MaxInputLength = 1000
	}

	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

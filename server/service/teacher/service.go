// Package teacher implements the question-answering pipeline: sanitize,
// resolve the session, detect the language, build the prompt, generate,
// parse, and persist the exchange. Failures come back as degraded
// responses carrying an error kind, so callers always get a renderable
// reply.
package teacher

import (
	"context"
	"log/slog"
	"strconv"

	chaterrors "github.com/sahayak-ai/sahayak/internal/errors"
	"github.com/sahayak-ai/sahayak/internal/observability"
	"github.com/sahayak-ai/sahayak/plugin/langdetect"
	"github.com/sahayak-ai/sahayak/plugin/llm"
	"github.com/sahayak-ai/sahayak/plugin/prompt"
	"github.com/sahayak-ai/sahayak/store"
)

const (
	// answerTemperature is used for teaching replies; errorTemperature for
	// the short localized error generations.
	answerTemperature float32 = 0.7
	errorTemperature  float32 = 0.3

	// DefaultContextWindow is how many trailing messages feed the prompt.
	DefaultContextWindow = 3

	// unsupportedFallback is the canned reply when the provider cannot be
	// asked to explain the language limitation itself.
	unsupportedFallback = "I apologize, but I don't support the language you're using. " +
		"I can help you in English, Hindi, and Telugu. " +
		"Please try asking your question in one of these languages."
)

// generationFailureText is the localized user-facing text for a failed
// generation.
var generationFailureText = map[string]string{
	langdetect.English: "I apologize, but I encountered an error while processing your request. " +
		"Please try again in a moment. If the problem persists, " +
		"check your internet connection and try again.",
	langdetect.Hindi: "मैं क्षमा चाहता हूं, लेकिन आपके अनुरोध को संसाधित करने में एक त्रुटि हुई। " +
		"कृपया कुछ देर बाद फिर से कोशिश करें। यदि समस्या बनी रहती है, " +
		"तो अपना इंटरनेट कनेक्शन जांचें और फिर से कोशिश करें।",
	langdetect.Telugu: "నేను క్షమాపణ కోరుకుంటున్నాను, కానీ మీ అభ్యర్థనను ప్రాసెస్ చేయడంలో ఒక లోపం ఉంది. " +
		"దయచేసి కొంత సమయం తర్వాత మళ్లీ ప్రయత్నించండి. సమస్య కొనసాగితే, " +
		"మీ ఇంటర్నెట్ కనెక్షన్‌ని తనిఖీ చేసి మళ్లీ ప్రయత్నించండి.",
}

// Generator is the model call surface the pipeline depends on;
// *llm.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt, systemMessage string, temperature float32, maxTokens int) (string, error)
	Info() llm.ModelInfo
}

// Options tune the pipeline.
type Options struct {
	// ConfidenceThreshold is a logging policy: detections below it are
	// answered anyway but logged for review.
	ConfidenceThreshold float64
	ContextWindow       int
	MaxInputLength      int
}

// Service runs the teaching pipeline.
type Service struct {
	detector  *langdetect.Detector
	prompts   *prompt.Builder
	generator Generator
	sessions  *store.Store

	confidenceThreshold float64
	contextWindow       int
	maxInputLength      int
}

// NewService assembles the pipeline. Zero option fields take defaults.
func NewService(detector *langdetect.Detector, prompts *prompt.Builder, generator Generator, sessions *store.Store, opts Options) *Service {
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = DefaultContextWindow
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	return &Service{
		detector:            detector,
		prompts:             prompts,
		generator:           generator,
		sessions:            sessions,
		confidenceThreshold: opts.ConfidenceThreshold,
		contextWindow:       opts.ContextWindow,
		maxInputLength:      opts.MaxInputLength,
	}
}

// HandleQuestion runs one question through the pipeline. It always returns
// a response; failures surface as degraded responses with an error kind.
func (s *Service) HandleQuestion(ctx context.Context, req Request) *Response {
	rc, ok := observability.FromContext(ctx)
	if !ok {
		rc = observability.NewRequestContext(nil)
	}

	sanitized := sanitizeInput(req.Text, s.maxInputLength)
	if sanitized == "" {
		rc.Warn("empty input after sanitization")
		return errorResponse(ErrorKindEmptyInput, langdetect.DefaultLanguage,
			"Empty or invalid input text", req.SessionID, "")
	}

	sessionID := s.resolveSession(req.SessionID, rc)
	rc.SessionID = sessionID

	language, confidence, detection := s.resolveLanguage(sanitized, req.ForceLanguage)
	if detection.Unsupported {
		return s.handleUnsupportedLanguage(ctx, sessionID, detection)
	}
	rc.Language = language
	var turnMetadata store.Metadata
	if confidence < s.confidenceThreshold {
		rc.Warn("low-confidence language detection", slog.Float64("confidence", confidence))
		turnMetadata = store.Metadata{
			"low_confidence": "true",
			"confidence":     strconv.FormatFloat(confidence, 'f', 2, 64),
		}
	}

	sessionContext := s.sessions.RecentContentWindow(sessionID, s.contextWindow)
	teacherPrompt := s.prompts.TeacherPrompt(sanitized, language, sessionContext)

	rc.Info("generating response",
		slog.Float64("confidence", confidence),
		slog.Int("context_messages", len(sessionContext)))

	raw, err := s.generator.Generate(ctx, sanitized, teacherPrompt, answerTemperature, 0)
	if err != nil {
		rc.Error("generation failed", err,
			slog.String(observability.LogFieldErrorCode,
				string(chaterrors.GetCodeFromError(err, chaterrors.CodeGenerationFailed))))
		kind := ErrorKindGenerationFailed
		if chaterrors.IsCode(err, chaterrors.CodeCanceled) {
			kind = ErrorKindCanceled
		}
		return errorResponse(kind, language, failureText(language), sessionID, err.Error())
	}

	parsed := parseSections(raw, language)

	// Persist the exchange only after a successful generation.
	s.sessions.AppendExchange(sessionID, sanitized, raw, language, turnMetadata)

	rc.Info("response generated",
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))

	return &Response{
		Language:    language,
		Text:        raw,
		Definition:  parsed.definition,
		Examples:    parsed.examples,
		Application: parsed.application,
		RawResponse: raw,
		SessionID:   sessionID,
		Confidence:  confidence,
	}
}

// Greet returns the localized greeting for a language code.
func (s *Service) Greet(language string) string {
	return s.prompts.Greeting(langdetect.Coerce(language))
}

// ModelInfo exposes the backing model's description.
func (s *Service) ModelInfo() llm.ModelInfo {
	return s.generator.Info()
}

// CheckModel probes provider connectivity when the generator supports it.
func (s *Service) CheckModel(ctx context.Context) bool {
	if probe, ok := s.generator.(interface{ TestConnection(context.Context) bool }); ok {
		return probe.TestConnection(ctx)
	}
	return true
}

// Sessions exposes the session store for management endpoints.
func (s *Service) Sessions() *store.Store {
	return s.sessions
}

// resolveSession returns a live session id, creating one when the request
// carries none or names a session that has expired or never existed.
func (s *Service) resolveSession(requested string, rc *observability.RequestContext) string {
	if requested != "" {
		if _, ok := s.sessions.Get(requested); ok {
			return requested
		}
		rc.Warn("session not found, starting a new one",
			slog.String("requested_session_id", requested))
	}
	return s.sessions.Create(nil)
}

// resolveLanguage applies the forced language when valid, otherwise runs
// detection. A forced language carries full confidence.
func (s *Service) resolveLanguage(text, forced string) (string, float64, langdetect.Result) {
	if forced != "" && langdetect.IsSupported(forced) {
		return forced, 1.0, langdetect.Result{Language: forced, Confidence: 1.0}
	}
	r := s.detector.Detect(text)
	return r.Language, r.Confidence, r
}

// handleUnsupportedLanguage answers in English that only the supported
// languages work. The explanation is generated when possible and canned
// otherwise; nothing is persisted to the session.
func (s *Service) handleUnsupportedLanguage(ctx context.Context, sessionID string, detection langdetect.Result) *Response {
	slog.Warn("unsupported language detected", "raw_language", detection.Raw)

	text := unsupportedFallback
	if s.generator != nil {
		errorPrompt := s.prompts.ErrorPrompt(langdetect.DefaultLanguage, prompt.ErrorUnsupportedLanguage)
		if generated, err := s.generator.Generate(ctx, errorPrompt, "", errorTemperature, 0); err == nil {
			text = generated
		}
	}

	return errorResponse(ErrorKindUnsupportedLanguage, langdetect.DefaultLanguage,
		text, sessionID, detection.Raw)
}

func failureText(language string) string {
	if text, ok := generationFailureText[language]; ok {
		return text
	}
	return generationFailureText[langdetect.DefaultLanguage]
}

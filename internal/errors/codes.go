// Package errors defines the machine-readable error taxonomy for the
// teacher pipeline and its collaborators.
package errors

import (
	"fmt"
)

// ErrorCode represents a specific failure kind in the request pipeline.
type ErrorCode string

const (
	// CodeEmptyInput indicates the input was empty after sanitation.
	CodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// CodeUnsupportedLanguage indicates the resolved language is outside the supported set.
	CodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// CodeNoModelAvailable indicates no fallback model responded at construction time.
	// This is fatal and surfaces at startup, never per-request.
	CodeNoModelAvailable ErrorCode = "NO_MODEL_AVAILABLE"
	// CodeRetriesExhausted indicates a generation call failed after the full backoff budget.
	CodeRetriesExhausted ErrorCode = "RETRIES_EXHAUSTED"
	// CodeGenerationFailed is the pipeline-level wrapping of a failed generation.
	CodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	// CodeSessionNotFound indicates a missing or expired session. Store
	// operations signal this through boolean returns; the code exists for
	// API responses only.
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	// CodeCanceled indicates the caller canceled the request.
	CodeCanceled ErrorCode = "CANCELED"
)

// ChatError represents a structured error for pipeline operations.
type ChatError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

// EmptyInput creates an empty input error.
func EmptyInput() *ChatError {
	return &ChatError{Code: CodeEmptyInput, Message: "empty or invalid input text"}
}

// UnsupportedLanguage creates an unsupported language error.
func UnsupportedLanguage(code string) *ChatError {
	return &ChatError{
		Code:    CodeUnsupportedLanguage,
		Message: fmt.Sprintf("language not supported: %s", code),
	}
}

// NoModelAvailable creates a no-model-available error.
func NoModelAvailable(tried []string, cause error) *ChatError {
	return &ChatError{
		Code:    CodeNoModelAvailable,
		Message: fmt.Sprintf("failed to initialize any model, tried: %v", tried),
		Cause:   cause,
	}
}

// RetriesExhausted creates a retries exhausted error carrying the last attempt's error.
func RetriesExhausted(attempts int, cause error) *ChatError {
	return &ChatError{
		Code:    CodeRetriesExhausted,
		Message: fmt.Sprintf("failed to generate response after %d attempts", attempts),
		Cause:   cause,
	}
}

// GenerationFailed wraps an underlying generation error.
func GenerationFailed(cause error) *ChatError {
	return &ChatError{Code: CodeGenerationFailed, Message: "generation failed", Cause: cause}
}

// Canceled creates a cancellation error.
func Canceled(cause error) *ChatError {
	return &ChatError{Code: CodeCanceled, Message: "operation canceled", Cause: cause}
}

// IsCode checks if an error carries a specific code.
func IsCode(err error, code ErrorCode) bool {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ChatError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code
	}
	return defaultCode
}

// Package prompt assembles the language-aware teaching prompts sent to the
// model. Templates for all supported languages live in a single table; any
// unknown language degrades to English.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
)

// contextWindow is the number of trailing context messages included in a
// teaching prompt.
const contextWindow = 3

// Builder renders prompts from the template table. The zero value is ready
// to use.
type Builder struct{}

// NewBuilder creates a prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// TeacherPrompt assembles the full teaching prompt for a question. Sections
// are joined by blank lines: system persona, optional conversation context,
// the response format contract, the question itself, and a closing
// instruction.
func (b *Builder) TeacherPrompt(question, language string, sessionContext []string) string {
	language = langdetect.Coerce(language)

	parts := []string{Lookup(language, KindSystem)}

	if ctx := b.formatContext(sessionContext, language); ctx != "" {
		parts = append(parts, ctx)
	}

	parts = append(parts,
		Lookup(language, KindResponseFormat),
		"\nUser Question: "+question,
		Lookup(language, KindFinalInstruction),
	)

	return strings.Join(parts, "\n\n")
}

// formatContext renders the trailing context messages as a numbered block
// under a localized header. Empty context renders nothing.
func (b *Builder) formatContext(sessionContext []string, language string) string {
	if len(sessionContext) == 0 {
		return ""
	}
	if len(sessionContext) > contextWindow {
		sessionContext = sessionContext[len(sessionContext)-contextWindow:]
	}

	lines := []string{Lookup(language, KindContextHeader)}
	for i, msg := range sessionContext {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, msg))
	}
	return strings.Join(lines, "\n")
}

// ErrorKind selects an error prompt template.
type ErrorKind string

const (
	ErrorUnsupportedLanguage ErrorKind = "unsupported_language"
	ErrorAPI                 ErrorKind = "api_error"
)

// ErrorPrompt returns the instruction prompt used to generate a localized
// error reply. Unknown kinds fall back to the API error template.
func (b *Builder) ErrorPrompt(language string, kind ErrorKind) string {
	templateKind := KindErrorAPI
	if kind == ErrorUnsupportedLanguage {
		templateKind = KindErrorUnsupported
	}
	return Lookup(language, templateKind)
}

// Greeting returns the localized assistant greeting.
func (b *Builder) Greeting(language string) string {
	return Lookup(language, KindGreeting)
}

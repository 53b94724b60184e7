package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
)

func TestTeacherPromptSectionOrder(t *testing.T) {
	b := NewBuilder()

	got := b.TeacherPrompt("What is gravity?", langdetect.English, nil)

	system := Lookup(langdetect.English, KindSystem)
	format := Lookup(langdetect.English, KindResponseFormat)
	final := Lookup(langdetect.English, KindFinalInstruction)

	assert.True(t, strings.HasPrefix(got, system))
	assert.True(t, strings.HasSuffix(got, final))
	assert.Contains(t, got, format)
	assert.Contains(t, got, "User Question: What is gravity?")

	// Persona comes before the format contract, which comes before the question.
	assert.Less(t, strings.Index(got, system), strings.Index(got, format))
	assert.Less(t, strings.Index(got, format), strings.Index(got, "User Question:"))
}

func TestTeacherPromptIncludesNumberedContext(t *testing.T) {
	b := NewBuilder()

	got := b.TeacherPrompt("And on the moon?", langdetect.English, []string{
		"What is gravity?",
		"Gravity is a force of attraction.",
	})

	assert.Contains(t, got, "Previous conversation context:")
	assert.Contains(t, got, "1. What is gravity?")
	assert.Contains(t, got, "2. Gravity is a force of attraction.")
}

func TestTeacherPromptLimitsContextWindow(t *testing.T) {
	b := NewBuilder()

	got := b.TeacherPrompt("next", langdetect.English, []string{
		"one", "two", "three", "four", "five",
	})

	assert.NotContains(t, got, "1. one")
	assert.NotContains(t, got, "two")
	assert.Contains(t, got, "1. three")
	assert.Contains(t, got, "2. four")
	assert.Contains(t, got, "3. five")
}

func TestTeacherPromptOmitsContextWhenEmpty(t *testing.T) {
	b := NewBuilder()

	got := b.TeacherPrompt("hi", langdetect.Hindi, nil)
	assert.NotContains(t, got, Lookup(langdetect.Hindi, KindContextHeader))
}

func TestTeacherPromptLocalized(t *testing.T) {
	b := NewBuilder()

	hi := b.TeacherPrompt("गुरुत्वाकर्षण क्या है?", langdetect.Hindi, []string{"पहला प्रश्न"})
	assert.Contains(t, hi, Lookup(langdetect.Hindi, KindSystem))
	assert.Contains(t, hi, "पिछले वार्तालाप का संदर्भ:")

	te := b.TeacherPrompt("గురుత్వాకర్షణ అంటే ఏమిటి?", langdetect.Telugu, nil)
	assert.Contains(t, te, Lookup(langdetect.Telugu, KindSystem))
	assert.Contains(t, te, Lookup(langdetect.Telugu, KindFinalInstruction))
}

func TestTeacherPromptUnknownLanguageFallsBack(t *testing.T) {
	b := NewBuilder()

	got := b.TeacherPrompt("question", "fr", nil)
	assert.Contains(t, got, Lookup(langdetect.English, KindSystem))
}

func TestErrorPrompt(t *testing.T) {
	b := NewBuilder()

	assert.Equal(t,
		Lookup(langdetect.English, KindErrorUnsupported),
		b.ErrorPrompt(langdetect.English, ErrorUnsupportedLanguage))
	assert.Equal(t,
		Lookup(langdetect.Telugu, KindErrorAPI),
		b.ErrorPrompt(langdetect.Telugu, ErrorAPI))

	// Unknown kinds degrade to the API error template.
	assert.Equal(t,
		Lookup(langdetect.Hindi, KindErrorAPI),
		b.ErrorPrompt(langdetect.Hindi, ErrorKind("mystery")))
}

func TestGreeting(t *testing.T) {
	b := NewBuilder()

	assert.Contains(t, b.Greeting(langdetect.English), "Hello!")
	assert.Contains(t, b.Greeting(langdetect.Hindi), "नमस्ते!")
	assert.Contains(t, b.Greeting(langdetect.Telugu), "నమస్కారం!")
	assert.Equal(t, b.Greeting(langdetect.English), b.Greeting("unknown"))
}

func TestLookupFallsBackPerKind(t *testing.T) {
	for _, lang := range langdetect.SupportedCodes() {
		for _, kind := range []Kind{
			KindSystem, KindResponseFormat, KindContextHeader,
			KindFinalInstruction, KindGreeting, KindErrorUnsupported, KindErrorAPI,
		} {
			assert.NotEmpty(t, Lookup(lang, kind), "lang=%s kind=%s", lang, kind)
		}
	}
	assert.Equal(t, Lookup(langdetect.English, KindSystem), Lookup("xx", KindSystem))
}

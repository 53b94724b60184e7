// Package langdetect classifies short question text into one of the
// supported language codes with a heuristic confidence score.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Confidence constants for degraded classifications.
const (
	// confidenceUnsupported signals "identified, but not a supported
	// language" distinctly from "supported but uncertain".
	confidenceUnsupported = 0.5
	// confidenceUndetermined signals the classifier could not determine
	// any language at all (empty after cleaning, pure symbols).
	confidenceUndetermined = 0.3
)

// Result is a language classification outcome.
type Result struct {
	Language   string
	Confidence float64

	// Unsupported marks text identified as a real language outside the
	// supported set; Language then holds the default language.
	Unsupported bool
	// Raw is the classifier's ISO 639-3 code before coercion, for logging.
	Raw string
}

// Detector classifies raw text into a supported language code.
// The underlying trigram classifier is deterministic, so results are
// reproducible across runs. The zero value is not usable; call New.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect classifies text and returns (languageCode, confidence).
// It never fails: empty or whitespace-only input yields (DefaultLanguage, 0.0).
func (d *Detector) Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Language: DefaultLanguage, Confidence: 0.0}
	}

	cleaned := cleanText(text)
	if cleaned == "" {
		return Result{Language: DefaultLanguage, Confidence: confidenceUndetermined}
	}

	info := whatlanggo.Detect(cleaned)
	if info.Confidence == 0 {
		return Result{Language: DefaultLanguage, Confidence: confidenceUndetermined}
	}

	raw := whatlanggo.LangToString(info.Lang)

	code := mapLang(info.Lang)
	if !IsSupported(code) {
		return Result{Language: DefaultLanguage, Confidence: confidenceUnsupported, Unsupported: true, Raw: raw}
	}

	// The classifier's native probability is unreliable on one-sentence
	// questions; recompute from script-character density instead.
	return Result{Language: code, Confidence: scriptConfidence(cleaned, code), Raw: raw}
}

// cleanText collapses whitespace and strips characters outside word
// characters, whitespace, and the Devanagari/Telugu blocks.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case isWordRune(r) || isDevanagari(r) || isTelugu(r):
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// scriptConfidence scales the expected-script character density into [0.5, 0.9].
func scriptConfidence(cleaned, code string) float64 {
	var inBlock func(rune) bool
	switch code {
	case Hindi:
		inBlock = isDevanagari
	case Telugu:
		inBlock = isTelugu
	default:
		inBlock = isLatinLetter
	}

	total := 0
	matched := 0
	for _, r := range cleaned {
		total++
		if inBlock(r) {
			matched++
		}
	}
	if total == 0 || matched == 0 {
		return confidenceUnsupported
	}

	density := float64(matched) / float64(total)
	confidence := 0.5 + density*0.4
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}

// mapLang converts a classifier language to a supported ISO 639-1 code.
// Unsupported languages map to the empty string.
func mapLang(lang whatlanggo.Lang) string {
	switch lang {
	case whatlanggo.Eng:
		return English
	case whatlanggo.Hin:
		return Hindi
	case whatlanggo.Tel:
		return Telugu
	default:
		return ""
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

func isTelugu(r rune) bool {
	return r >= 0x0C00 && r <= 0x0C7F
}

// IsDevanagariText reports whether text contains any Devanagari characters.
func IsDevanagariText(text string) bool {
	return strings.ContainsFunc(text, isDevanagari)
}

// IsTeluguText reports whether text contains any Telugu characters.
func IsTeluguText(text string) bool {
	return strings.ContainsFunc(text, isTelugu)
}

// IsLatinText reports whether text is predominantly Latin letters
// (over 70% of its non-whitespace characters).
func IsLatinText(text string) bool {
	total := 0
	latin := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isLatinLetter(r) {
			latin++
		}
	}
	if total == 0 {
		return true
	}
	return float64(latin)/float64(total) > 0.7
}

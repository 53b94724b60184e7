package teacher

import (
	"fmt"
	"strings"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
)

// maxDisplayExamples caps the examples shown in the plain-text rendering.
const maxDisplayExamples = 2

type displayLabels struct {
	definition  string
	examples    string
	application string
}

var labelsByLanguage = map[string]displayLabels{
	langdetect.English: {"Definition", "Examples", "Application"},
	langdetect.Hindi:   {"परिभाषा", "उदाहरण", "अनुप्रयोग"},
	langdetect.Telugu:  {"నిర్వచనం", "ఉదాహరణలు", "అప్లికేషన్"},
}

// FormatForDisplay renders a response as labeled plain text for terminal
// output. Empty sections are skipped and at most two examples are shown.
// Degraded responses render as a single error line.
func FormatForDisplay(r *Response) string {
	if r.IsError() {
		return "Error: " + r.Text
	}

	labels := labelsByLanguage[langdetect.Coerce(r.Language)]

	var parts []string
	if r.Definition != "" {
		parts = append(parts, labels.definition+": "+r.Definition)
	}
	if len(r.Examples) > 0 {
		lines := []string{labels.examples + ":"}
		for i, example := range r.Examples {
			if i == maxDisplayExamples {
				break
			}
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, example))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if r.Application != "" {
		parts = append(parts, labels.application+": "+r.Application)
	}

	return strings.Join(parts, "\n\n")
}

package teacher

import (
	"regexp"
	"strings"

	"github.com/sahayak-ai/sahayak/plugin/langdetect"
)

// sectionKind identifies a slot of the structured teaching reply.
type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionDefinition
	sectionExamples
	sectionApplication
)

// sections holds the parsed components of a model reply.
type sections struct {
	definition  string
	examples    []string
	application string
}

// sectionMatcher maps a header line to the section it opens.
type sectionMatcher struct {
	kind  sectionKind
	match func(line string) bool
}

func headerRegexp(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// sectionMatchers drives one shared parser for every supported language.
// English headers are numbered list items; Hindi and Telugu headers are
// recognized by their section keywords anywhere in the line.
var sectionMatchers = map[string][]sectionMatcher{
	langdetect.English: {
		{sectionDefinition, headerRegexp(`(?i)^\d+\.\s*(Definition|Explanation)`)},
		{sectionExamples, headerRegexp(`(?i)^\d+\.\s*Examples?`)},
		{sectionApplication, headerRegexp(`(?i)^\d+\.\s*Application`)},
	},
	langdetect.Hindi: {
		{sectionDefinition, headerRegexp(`परिभाषा|स्पष्टीकरण`)},
		{sectionExamples, headerRegexp(`उदाहरण`)},
		{sectionApplication, headerRegexp(`अनुप्रयोग|टिप`)},
	},
	langdetect.Telugu: {
		{sectionDefinition, headerRegexp(`నిర్వచనం|వివరణ`)},
		{sectionExamples, headerRegexp(`ఉదాహరణ`)},
		{sectionApplication, headerRegexp(`అప్లికేషన్|చిట్కా`)},
	},
}

// parseSections splits a model reply into definition, examples, and
// application. Header lines open a section and contribute no content;
// stray numbered markers are skipped. A reply where no header matched at
// all lands whole in the definition, as does a reply in a language
// without matchers.
func parseSections(text, language string) sections {
	matchers, ok := sectionMatchers[language]
	if !ok {
		return sections{definition: text, examples: []string{}}
	}

	out := sections{examples: []string{}}
	current := sectionNone
	headerSeen := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if kind, matched := matchHeader(matchers, line); matched {
			current = kind
			headerSeen = true
			continue
		}

		if strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") || strings.HasPrefix(line, "3.") {
			continue
		}

		switch current {
		case sectionDefinition:
			out.definition += line + " "
		case sectionExamples:
			if !strings.HasPrefix(line, "-") {
				out.examples = append(out.examples, line)
			}
		case sectionApplication:
			out.application += line + " "
		}
	}

	if !headerSeen {
		return sections{definition: text, examples: []string{}}
	}

	out.definition = strings.TrimSpace(out.definition)
	out.application = strings.TrimSpace(out.application)
	return out
}

func matchHeader(matchers []sectionMatcher, line string) (sectionKind, bool) {
	for _, m := range matchers {
		if m.match(line) {
			return m.kind, true
		}
	}
	return sectionNone, false
}

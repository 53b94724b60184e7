package langdetect

// Supported language codes.
const (
	English = "en"
	Hindi   = "hi"
	Telugu  = "te"

	// DefaultLanguage is the fallback for anything we cannot classify.
	DefaultLanguage = English
)

// supportedLanguages maps supported codes to display names.
var supportedLanguages = map[string]string{
	English: "English",
	Hindi:   "Hindi",
	Telugu:  "Telugu",
}

// IsSupported reports whether the code belongs to the supported set.
func IsSupported(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// DisplayName returns the human-readable name for a code, or "Unknown".
func DisplayName(code string) string {
	if name, ok := supportedLanguages[code]; ok {
		return name
	}
	return "Unknown"
}

// Coerce maps an arbitrary code onto the supported set, defaulting to English.
func Coerce(code string) string {
	if IsSupported(code) {
		return code
	}
	return DefaultLanguage
}

// SupportedCodes returns the supported codes in stable order.
func SupportedCodes() []string {
	return []string{English, Hindi, Telugu}
}

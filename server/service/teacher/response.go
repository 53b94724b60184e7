package teacher

// ErrorKind labels a degraded response. The pipeline reports failures as
// normal responses carrying a kind, never as transport errors.
type ErrorKind string

const (
	ErrorKindNone                ErrorKind = ""
	ErrorKindEmptyInput          ErrorKind = "empty_input"
	ErrorKindUnsupportedLanguage ErrorKind = "unsupported_language"
	ErrorKindGenerationFailed    ErrorKind = "generation_failed"
	ErrorKindCanceled            ErrorKind = "canceled"
)

// Request is one question put to the teacher.
type Request struct {
	Text string `json:"text"`
	// SessionID continues an existing conversation; empty starts a new one.
	SessionID string `json:"session_id,omitempty"`
	// ForceLanguage skips detection when set to a supported code.
	ForceLanguage string `json:"language,omitempty"`
}

// Response is the structured teaching reply.
type Response struct {
	Language    string    `json:"language"`
	Text        string    `json:"text"`
	Definition  string    `json:"definition"`
	Examples    []string  `json:"examples"`
	Application string    `json:"application"`
	RawResponse string    `json:"raw_response"`
	SessionID   string    `json:"session_id,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	ErrorKind   ErrorKind `json:"error,omitempty"`
	ErrorDetail string    `json:"error_details,omitempty"`
}

// IsError reports whether the response is a degraded one.
func (r *Response) IsError() bool {
	return r.ErrorKind != ErrorKindNone
}

// errorResponse builds a degraded response whose display fields all carry
// the error text, mirroring the shape of a successful reply.
func errorResponse(kind ErrorKind, language, text, sessionID, detail string) *Response {
	return &Response{
		Language:    language,
		Text:        text,
		Definition:  text,
		Examples:    []string{},
		Application: "",
		RawResponse: text,
		SessionID:   sessionID,
		ErrorKind:   kind,
		ErrorDetail: detail,
	}
}

package store

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversational turn.
type Role string

const (
	// RoleUser marks a message written by the caller.
	RoleUser Role = "user"
	// RoleAssistant marks a message written by the model.
	RoleAssistant Role = "assistant"
)

// Metadata is an open key/value bag with scalar string values.
// Immutable once attached to a message.
type Metadata map[string]string

// Message is one conversational turn. Fields are immutable once stored;
// messages are removed only by session deletion or expiry.
type Message struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// newMessage creates a message with a fresh id and the current time.
func newMessage(role Role, content, language string, metadata Metadata) Message {
	return Message{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Role:      role,
		Content:   content,
		Language:  language,
		Metadata:  cloneMetadata(metadata),
	}
}

// cloneMetadata copies the bag so later caller mutations cannot reach
// stored messages.
func cloneMetadata(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package middleware

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxMessageLength is the message size limit in bytes.
const DefaultMaxMessageLength = 2000

var (
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
	ErrMessageNotUTF8   = errors.New("message must be valid UTF-8")
	ErrInvalidSessionID = errors.New("invalid session ID format")
)

// ValidateMessageContent validates a chat message. Empty and whitespace-only
// messages are valid; the engine answers them with a clarification.
func ValidateMessageContent(content string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxMessageLength
	}
	if len(content) > maxLength {
		return fmt.Errorf("%w of %d bytes", ErrMessageTooLong, maxLength)
	}
	if !utf8.ValidString(content) {
		return ErrMessageNotUTF8
	}
	return nil
}

// ValidateSessionID validates a session ID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidSessionID
	}
	return nil
}

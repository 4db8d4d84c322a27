package scoring

import (
	"fmt"
	"strings"
)

// MaxTranscriptSize caps the size of a directly submitted transcript.
const MaxTranscriptSize = 10 * 1024 * 1024 // 10MB

const maxSessionIDLen = 256

// ValidationError marks input rejected before any evaluation ran. No
// partial state is ever written for a rejected submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateSessionID accepts only alphanumerics, hyphens, and underscores,
// up to 256 characters. Anything else could smuggle path components.
func ValidateSessionID(id string) error {
	if id == "" {
		return &ValidationError{Field: "session id", Reason: "must not be empty"}
	}
	if len(id) > maxSessionIDLen {
		return &ValidationError{Field: "session id", Reason: fmt.Sprintf("exceeds %d characters", maxSessionIDLen)}
	}
	for _, r := range id {
		if !isIDRune(r) {
			return &ValidationError{Field: "session id", Reason: fmt.Sprintf("contains disallowed character %q", r)}
		}
	}
	return nil
}

// ValidateTranscript rejects empty, oversized, or binary-looking input.
func ValidateTranscript(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "transcript", Reason: "must not be empty"}
	}
	if len(text) > MaxTranscriptSize {
		return &ValidationError{Field: "transcript", Reason: "exceeds maximum size of 10MB"}
	}
	if strings.ContainsRune(text, '\x00') {
		return &ValidationError{Field: "transcript", Reason: "contains invalid characters"}
	}
	return nil
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

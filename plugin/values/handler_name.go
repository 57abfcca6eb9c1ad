package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HandlerName represents a validated handler identifier.
// Enforces non-empty, trimmed handler names.
type HandlerName struct {
	value string
}

// NewHandlerName creates a HandlerName with strict validation.
// A valid handler name must:
// - Be non-empty
// - contain only alphanumeric characters, underscores, and hyphens
// - NOT contain paths, dots, or special characters
// - Be at most 64 characters long
func NewHandlerName(name string) (HandlerName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return HandlerName{}, fmt.Errorf("handler name cannot be empty")
	}

	if len(name) > 64 {
		return HandlerName{}, fmt.Errorf("handler name too long (max 64 chars)")
	}

	// Security check: Path separators
	if strings.ContainsAny(name, `/\`) {
		return HandlerName{}, fmt.Errorf("handler name cannot contain path separators")
	}

	// Security check: Directory traversal
	if strings.Contains(name, "..") {
		return HandlerName{}, fmt.Errorf("handler name cannot contain parent directory references")
	}

	for _, ch := range name {
		if !isValidHandlerChar(ch) {
			return HandlerName{}, fmt.Errorf("invalid handler name %q: must contain only alphanumeric characters, underscores, and hyphens", name)
		}
	}

	return HandlerName{value: name}, nil
}

func isValidHandlerChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_' ||
		r == '-'
}

// MustNewHandlerName creates a HandlerName or panics
func MustNewHandlerName(name string) HandlerName {
	hn, err := NewHandlerName(name)
	if err != nil {
		panic(err)
	}
	return hn
}

// String returns the string representation
func (h HandlerName) String() string {
	return h.value
}

// IsEmpty returns true if this is the zero value
func (h HandlerName) IsEmpty() bool {
	return h.value == ""
}

// Equals checks if two handler names are equal
func (h HandlerName) Equals(other HandlerName) bool {
	return h.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (h HandlerName) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (h *HandlerName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid handler name JSON: %w", err)
	}

	name, err := NewHandlerName(s)
	if err != nil {
		return err
	}
	*h = name
	return nil
}

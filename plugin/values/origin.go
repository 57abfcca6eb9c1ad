package values

import (
	"fmt"
	"strings"
)

// Origin identifies the vendor a handler type comes from, in reverse-DNS
// form (e.g. "dev.eventhost", "com.example.metrics").
type Origin struct {
	value string
}

// NewOrigin creates an Origin with validation.
// A valid origin must:
// - Be non-empty
// - Be lowercase
// - Consist of dot-separated labels of alphanumeric characters and hyphens
// - Be at most 128 characters long
func NewOrigin(origin string) (Origin, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return Origin{}, fmt.Errorf("origin cannot be empty")
	}

	if len(origin) > 128 {
		return Origin{}, fmt.Errorf("origin too long (max 128 chars)")
	}

	for _, label := range strings.Split(origin, ".") {
		if label == "" {
			return Origin{}, fmt.Errorf("invalid origin %q: empty label", origin)
		}
		for _, ch := range label {
			if !isValidOriginChar(ch) {
				return Origin{}, fmt.Errorf("invalid origin %q: must be lowercase dot-separated labels of alphanumeric characters and hyphens", origin)
			}
		}
	}

	return Origin{value: origin}, nil
}

func isValidOriginChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '-'
}

// MustNewOrigin creates an Origin or panics
func MustNewOrigin(origin string) Origin {
	o, err := NewOrigin(origin)
	if err != nil {
		panic(err)
	}
	return o
}

// String returns the string representation
func (o Origin) String() string {
	return o.value
}

// IsEmpty returns true if this is the zero value
func (o Origin) IsEmpty() bool {
	return o.value == ""
}

// Equals checks if two origins are equal
func (o Origin) Equals(other Origin) bool {
	return o.value == other.value
}

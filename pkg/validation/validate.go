package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"forumd/pkg/models"
)

// Rules controls message payload validation. Configured once at startup.
type Rules struct {
	// AllowEmpty permits whitespace-only content when true.
	AllowEmpty bool
	// MaxContentLen caps content length in bytes; zero means unlimited.
	MaxContentLen int
}

var rules Rules

// SetRules installs the global validation rules.
func SetRules(r Rules) { rules = r }

// ValidateMessage checks an input payload against the configured rules.
func ValidateMessage(m models.Message) error {
	if !utf8.ValidString(m.Content) {
		return errors.New("content is not valid utf-8")
	}
	if !rules.AllowEmpty && strings.TrimSpace(m.Content) == "" {
		return errors.New("content is required")
	}
	if rules.MaxContentLen > 0 && len(m.Content) > rules.MaxContentLen {
		return fmt.Errorf("content exceeds %d bytes", rules.MaxContentLen)
	}
	return nil
}

package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var reservedGroupNames = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"auth":        {},
	"friends":     {},
	"games":       {},
	"groups":      {},
	"login":       {},
	"messages":    {},
	"metrics":     {},
	"players":     {},
	"signup":      {},
	"steam":       {},
	"tournaments": {},
	"users":       {},
}

// ValidateGroupName validates group name length and reserved names.
func ValidateGroupName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("group name is required")
	}
	if utf8.RuneCountInString(trimmed) > 60 {
		return fmt.Errorf("group name must not exceed 60 characters")
	}

	if _, exists := reservedGroupNames[strings.ToLower(trimmed)]; exists {
		return fmt.Errorf("group name is reserved")
	}

	return nil
}

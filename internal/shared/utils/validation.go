package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength          = 128
	MaxNameLength        = 256
	MaxPathLength        = 4096
	MaxArgumentsLength   = 4096
	MaxDescriptionLength = 2048
)

// SafeIDPattern allows alphanumeric, hyphens, underscores (covers UUIDs)
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateName validates a display/process name field
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidatePath validates an executable path field
func ValidatePath(path, fieldName string) error {
	return ValidateString(path, fieldName, 1, MaxPathLength, true)
}

// ValidateArguments validates an argument string field
func ValidateArguments(arguments, fieldName string) error {
	return ValidateString(arguments, fieldName, 0, MaxArgumentsLength, false)
}

// ValidateDescription validates a description field
func ValidateDescription(description, fieldName string) error {
	return ValidateString(description, fieldName, 0, MaxDescriptionLength, false)
}

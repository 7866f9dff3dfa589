package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FieldError is a validation failure carrying a stable machine code in
// addition to the human readable message.
type FieldError struct {
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// NewFieldError creates a FieldError with the given code and message
func NewFieldError(code, message string) *FieldError {
	return &FieldError{Code: code, Message: message}
}

// ValidateRequiredFields checks that every named field is present in data
// and not nil. Returns a single error listing all missing fields.
func ValidateRequiredFields(data map[string]interface{}, required []string) *FieldError {
	if len(data) == 0 {
		return NewFieldError("empty_request", "Request body is required")
	}
	missing := make([]string, 0)
	for _, field := range required {
		if v, ok := data[field]; !ok || v == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return NewFieldError("missing_required_fields",
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// ValidateStringField validates a string field against length bounds and
// returns the trimmed value.
func ValidateStringField(value interface{}, fieldName string, minLength, maxLength int) (string, *FieldError) {
	str, ok := value.(string)
	if !ok {
		return "", NewFieldError("invalid_string_type", fmt.Sprintf("%s must be a string", fieldName))
	}
	trimmed := strings.TrimSpace(str)
	if len(trimmed) < minLength {
		return "", NewFieldError("string_too_short",
			fmt.Sprintf("%s must be at least %d character(s)", fieldName, minLength))
	}
	if maxLength > 0 && len(str) > maxLength {
		return "", NewFieldError("string_too_long",
			fmt.Sprintf("%s must be at most %d character(s)", fieldName, maxLength))
	}
	return trimmed, nil
}

// ValidateIntegerField validates an integer field. JSON numbers arrive as
// float64; numeric strings are also accepted. Any other shape is an
// invalid_integer_type.
func ValidateIntegerField(value interface{}, fieldName string, minValue int) (int, *FieldError) {
	var intValue int
	switch v := value.(type) {
	case int:
		intValue = v
	case int64:
		intValue = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, NewFieldError("invalid_integer_type", fmt.Sprintf("%s must be an integer", fieldName))
		}
		intValue = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, NewFieldError("invalid_integer_type", fmt.Sprintf("%s must be an integer", fieldName))
		}
		intValue = parsed
	default:
		return 0, NewFieldError("invalid_integer_type", fmt.Sprintf("%s must be an integer", fieldName))
	}

	if intValue < minValue {
		return 0, NewFieldError("integer_below_minimum",
			fmt.Sprintf("%s must be at least %d", fieldName, minValue))
	}
	return intValue, nil
}

// ValidateBooleanField validates a boolean field, accepting the usual
// true/false string spellings.
func ValidateBooleanField(value interface{}, fieldName string) (bool, *FieldError) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}
	return false, NewFieldError("invalid_boolean_type",
		fmt.Sprintf("%s must be a boolean (true/false)", fieldName))
}

// ValidateDateField parses a date string (YYYY-MM-DD or RFC 3339).
func ValidateDateField(value interface{}, fieldName string) (time.Time, *FieldError) {
	str, ok := value.(string)
	if !ok {
		return time.Time{}, NewFieldError("invalid_date_format",
			fmt.Sprintf("%s must be a string in ISO format", fieldName))
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return time.Time{}, NewFieldError("invalid_iso_date_format",
			fmt.Sprintf("%s must be in ISO format (YYYY-MM-DD or ISO 8601)", fieldName))
	}
	return parsed, nil
}

// ValidateDateNotExpired rejects dates that are not strictly in the future.
func ValidateDateNotExpired(expiration time.Time, now time.Time, fieldName string) *FieldError {
	if !expiration.After(now) {
		return NewFieldError("expired_date",
			fmt.Sprintf("%s has already passed. Cannot declare expired items.", fieldName))
	}
	return nil
}

// SanitizeString removes null bytes and trims whitespace from user input
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}

// ValidateLimit clamps a pagination limit to sane bounds
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// ValidateOffset clamps a pagination offset
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiredFields(t *testing.T) {
	err := ValidateRequiredFields(map[string]interface{}{}, []string{"name"})
	assert.NotNil(t, err)
	assert.Equal(t, "empty_request", err.Code)

	err = ValidateRequiredFields(map[string]interface{}{"name": "Aspirin"}, []string{"name", "amm", "quantity"})
	assert.NotNil(t, err)
	assert.Equal(t, "missing_required_fields", err.Code)
	assert.Contains(t, err.Message, "amm")
	assert.Contains(t, err.Message, "quantity")

	err = ValidateRequiredFields(map[string]interface{}{"name": "Aspirin", "amm": nil}, []string{"name", "amm"})
	assert.NotNil(t, err)
	assert.Equal(t, "missing_required_fields", err.Code, "nil values count as missing")

	assert.Nil(t, ValidateRequiredFields(map[string]interface{}{"name": "Aspirin"}, []string{"name"}))
}

func TestValidateStringField(t *testing.T) {
	value, err := ValidateStringField("  Aspirin  ", "name", 2, 200)
	assert.Nil(t, err)
	assert.Equal(t, "Aspirin", value)

	_, err = ValidateStringField(42, "name", 2, 200)
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_string_type", err.Code)

	_, err = ValidateStringField("A", "name", 2, 200)
	assert.NotNil(t, err)
	assert.Equal(t, "string_too_short", err.Code)

	_, err = ValidateStringField("   ", "name", 1, 200)
	assert.NotNil(t, err)
	assert.Equal(t, "string_too_short", err.Code, "whitespace-only fails the minimum after trimming")

	_, err = ValidateStringField("abcdef", "code", 1, 5)
	assert.NotNil(t, err)
	assert.Equal(t, "string_too_long", err.Code)
}

func TestValidateIntegerField(t *testing.T) {
	value, err := ValidateIntegerField(float64(10), "quantity", 1)
	assert.Nil(t, err)
	assert.Equal(t, 10, value)

	value, err = ValidateIntegerField("7", "quantity", 1)
	assert.Nil(t, err)
	assert.Equal(t, 7, value)

	_, err = ValidateIntegerField(float64(2.5), "quantity", 1)
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_integer_type", err.Code)

	_, err = ValidateIntegerField("abc", "quantity", 1)
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_integer_type", err.Code)

	_, err = ValidateIntegerField(true, "quantity", 1)
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_integer_type", err.Code)

	_, err = ValidateIntegerField(float64(0), "quantity", 1)
	assert.NotNil(t, err)
	assert.Equal(t, "integer_below_minimum", err.Code)

	_, err = ValidateIntegerField(-3, "quantity", 1)
	assert.NotNil(t, err)
	assert.Equal(t, "integer_below_minimum", err.Code)
}

func TestValidateBooleanField(t *testing.T) {
	value, err := ValidateBooleanField(true, "is_imported")
	assert.Nil(t, err)
	assert.True(t, value)

	value, err = ValidateBooleanField("false", "is_imported")
	assert.Nil(t, err)
	assert.False(t, value)

	value, err = ValidateBooleanField("YES", "is_imported")
	assert.Nil(t, err)
	assert.True(t, value)

	_, err = ValidateBooleanField("maybe", "is_imported")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_boolean_type", err.Code)

	_, err = ValidateBooleanField(1, "is_imported")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_boolean_type", err.Code)
}

func TestValidateDateField(t *testing.T) {
	parsed, err := ValidateDateField("2027-06-15", "expiration_date")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2027, time.June, 15, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ValidateDateField("2027-06-15T10:30:00Z", "expiration_date")
	assert.Nil(t, err)
	assert.Equal(t, 10, parsed.Hour())

	_, err = ValidateDateField("15/06/2027", "expiration_date")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_iso_date_format", err.Code)

	_, err = ValidateDateField(20270615, "expiration_date")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_date_format", err.Code)
}

func TestValidateDateNotExpired(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, ValidateDateNotExpired(now.Add(time.Hour), now, "expiration_date"))

	err := ValidateDateNotExpired(now.Add(-time.Hour), now, "expiration_date")
	assert.NotNil(t, err)
	assert.Equal(t, "expired_date", err.Code)

	err = ValidateDateNotExpired(now, now, "expiration_date")
	assert.NotNil(t, err)
	assert.Equal(t, "expired_date", err.Code, "expiring exactly now is expired")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Aspirin", SanitizeString("  Aspirin\x00  "))
	assert.Equal(t, "", SanitizeString("\x00"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(100))
	assert.Equal(t, 100, ValidateLimit(5000))
}

func TestValidateOffset(t *testing.T) {
	assert.Equal(t, 0, ValidateOffset(-1))
	assert.Equal(t, 0, ValidateOffset(0))
	assert.Equal(t, 40, ValidateOffset(40))
}

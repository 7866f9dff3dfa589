package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a new UUID for generic identifiers
func GenerateID() string {
	return uuid.New().String()
}

// GenerateMedicineID generates a unique medicine declaration ID
func GenerateMedicineID() string {
	return "MED-" + uuid.New().String()
}

// GeneratePropositionID generates a unique medicine proposition ID
func GeneratePropositionID() string {
	return "PROP-" + uuid.New().String()
}

// GenerateAuditID generates a unique audit log entry ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}

// GenerateDeclarationCode generates the short human-facing declaration code
// printed on citizen receipts. Uses the first UUID group only.
func GenerateDeclarationCode() string {
	raw := uuid.New().String()
	return "DECL-" + strings.ToUpper(raw[:8])
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

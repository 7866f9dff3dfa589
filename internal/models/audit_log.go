package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AuditLogEntry represents the AUDIT_LOGS table. Entries are append-only:
// the DAO exposes no update or delete operations.
type AuditLogEntry struct {
	AuditID     string     `db:"AUDIT_ID" json:"auditId"`
	UserID      string     `db:"USER_ID" json:"userId"`
	Action      ActionType `db:"ACTION" json:"action"`
	EntityType  string     `db:"ENTITY_TYPE" json:"entityType"`
	EntityID    *string    `db:"ENTITY_ID" json:"entityId,omitempty"`
	Details     JSON       `db:"DETAILS" json:"details,omitempty"`
	CreatedTime int64      `db:"CREATED_TIME" json:"createdTime"`
}

// JSON type for handling JSON columns in MySQL
type JSON json.RawMessage

// Scan implements the sql.Scanner interface for JSON
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSON: %T", value)
	}

	var temp interface{}
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("invalid JSON data: %w", err)
	}

	cleanBytes, err := json.Marshal(temp)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	*j = JSON(cleanBytes)
	return nil
}

// Value implements the driver.Valuer interface for JSON
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON implements json.Marshaler
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = JSON(data)
	return nil
}

package dao

import (
	"context"
	"fmt"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

const auditLogColumns = `
	AUDIT_ID, USER_ID, ACTION, ENTITY_TYPE, ENTITY_ID, DETAILS, CREATED_TIME`

// AuditLogDAO handles database operations for audit log entries.
// The log is append-only: there are no update or delete operations.
type AuditLogDAO struct {
	db *database.DB
}

// NewAuditLogDAO creates a new AuditLogDAO instance
func NewAuditLogDAO(db *database.DB) *AuditLogDAO {
	return &AuditLogDAO{db: db}
}

// Create inserts a new audit log entry
func (dao *AuditLogDAO) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO AUDIT_LOGS (
			AUDIT_ID, USER_ID, ACTION, ENTITY_TYPE, ENTITY_ID, DETAILS, CREATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		entry.AuditID,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Details,
		entry.CreatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

// ListByEntity retrieves the audit trail of a single entity, newest first
func (dao *AuditLogDAO) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]models.AuditLogEntry, error) {
	query := `SELECT ` + auditLogColumns + `
		FROM AUDIT_LOGS
		WHERE ENTITY_TYPE = ? AND ENTITY_ID = ?
		ORDER BY CREATED_TIME DESC
		LIMIT ? OFFSET ?`

	entries := []models.AuditLogEntry{}
	err := dao.db.SelectContext(ctx, &entries, query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries by entity: %w", err)
	}

	return entries, nil
}

// ListByUser retrieves the actions performed by a single user, newest first
func (dao *AuditLogDAO) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.AuditLogEntry, error) {
	query := `SELECT ` + auditLogColumns + `
		FROM AUDIT_LOGS
		WHERE USER_ID = ?
		ORDER BY CREATED_TIME DESC
		LIMIT ? OFFSET ?`

	entries := []models.AuditLogEntry{}
	err := dao.db.SelectContext(ctx, &entries, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries by user: %w", err)
	}

	return entries, nil
}

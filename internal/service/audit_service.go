package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/dao"
	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/serviceerror"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// AuditService records state-changing actions into the append-only audit
// log. Recording happens after the primary mutation has committed; a
// failed write is logged and never reverts the state change.
type AuditService struct {
	auditDAO AuditLogDAOInterface
	userDAO  UserDAOInterface
	logger   *logrus.Logger
}

// NewAuditService creates a new audit service instance
func NewAuditService(auditDAO AuditLogDAOInterface, userDAO UserDAOInterface, logger *logrus.Logger) *AuditService {
	return &AuditService{
		auditDAO: auditDAO,
		userDAO:  userDAO,
		logger:   logger,
	}
}

// Record appends one audit log entry. The actor must resolve to an
// existing user and entityType must be non-empty.
func (s *AuditService) Record(
	ctx context.Context,
	actorID string,
	action models.ActionType,
	entityType string,
	entityID *string,
	details map[string]interface{},
) (*models.AuditLogEntry, error) {
	if actorID == "" {
		return nil, fmt.Errorf("actor id is required")
	}
	if entityType == "" {
		return nil, fmt.Errorf("entity type is required")
	}
	if !action.Valid() {
		return nil, fmt.Errorf("unknown action type: %s", action)
	}

	if _, err := s.userDAO.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, fmt.Errorf("actor does not resolve to an existing user: %s", actorID)
		}
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}

	var detailsJSON models.JSON
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit details: %w", err)
		}
		detailsJSON = models.JSON(raw)
	}

	entry := &models.AuditLogEntry{
		AuditID:     utils.GenerateAuditID(),
		UserID:      actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     detailsJSON,
		CreatedTime: utils.GetCurrentTimeMillis(),
	}

	if err := s.auditDAO.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist audit entry: %w", err)
	}

	return entry, nil
}

// RecordBestEffort records an audit entry and downgrades any failure to a
// warning log. Callers use this after the primary transaction commits.
func (s *AuditService) RecordBestEffort(
	ctx context.Context,
	actorID string,
	action models.ActionType,
	entityType string,
	entityID *string,
	details map[string]interface{},
) {
	if _, err := s.Record(ctx, actorID, action, entityType, entityID, details); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"actor":       actorID,
			"action":      action,
			"entity_type": entityType,
		}).Warn("Audit record write failed")
	}
}

// GetEntityTrail returns the audit trail of one entity, newest first.
// Restricted to pharmacists and admins.
func (s *AuditService) GetEntityTrail(ctx context.Context, actorID, entityType, entityID string, limit, offset int) ([]models.AuditLogEntry, *serviceerror.ServiceError) {
	if svcErr := s.requireReviewer(ctx, actorID); svcErr != nil {
		return nil, svcErr
	}

	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	entries, err := s.auditDAO.ListByEntity(ctx, entityType, entityID, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list audit entries")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list audit entries")
	}
	return entries, nil
}

// GetUserTrail returns the actions performed by one user, newest first.
// Restricted to admins.
func (s *AuditService) GetUserTrail(ctx context.Context, actorID, userID string, limit, offset int) ([]models.AuditLogEntry, *serviceerror.ServiceError) {
	actor, err := s.userDAO.GetByID(ctx, actorID)
	if err != nil || actor.Role != models.RoleAdmin {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"only admins can read user audit trails")
	}

	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	entries, listErr := s.auditDAO.ListByUser(ctx, userID, limit, offset)
	if listErr != nil {
		s.logger.WithError(listErr).Error("Failed to list audit entries")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list audit entries")
	}
	return entries, nil
}

func (s *AuditService) requireReviewer(ctx context.Context, actorID string) *serviceerror.ServiceError {
	if actorID == "" {
		return serviceerror.CustomServiceError(serviceerror.ForbiddenError, "actor identity is required")
	}

	actor, err := s.userDAO.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return serviceerror.CustomServiceError(serviceerror.ForbiddenError,
				fmt.Sprintf("unknown actor: %s", actorID))
		}
		s.logger.WithError(err).Error("Failed to resolve actor")
		return serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to resolve actor")
	}
	if actor.Role != models.RolePharmacist && actor.Role != models.RoleAdmin {
		return serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot read audit trails", actor.Role))
	}
	return nil
}

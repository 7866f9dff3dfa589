package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/dao"
	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/serviceerror"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// PropositionService handles the facility-facing side of redistribution:
// browsing available listings and claiming one.
type PropositionService struct {
	propositionDAO PropositionDAOInterface
	medicineDAO    MedicineDAOInterface
	userDAO        UserDAOInterface
	audit          *AuditService
	db             *database.DB
	logger         *logrus.Logger
}

// NewPropositionService creates a new proposition service instance
func NewPropositionService(
	propositionDAO PropositionDAOInterface,
	medicineDAO MedicineDAOInterface,
	userDAO UserDAOInterface,
	audit *AuditService,
	db *database.DB,
	logger *logrus.Logger,
) *PropositionService {
	return &PropositionService{
		propositionDAO: propositionDAO,
		medicineDAO:    medicineDAO,
		userDAO:        userDAO,
		audit:          audit,
		db:             db,
		logger:         logger,
	}
}

// ListAvailable returns the active AVAILABLE listings whose medicine is
// approved for redistribution and not yet expired.
func (s *PropositionService) ListAvailable(ctx context.Context, filters models.PropositionFilters) ([]models.PropositionListingResponse, *serviceerror.ServiceError) {
	filters.Limit = utils.ValidateLimit(filters.Limit)
	filters.Offset = utils.ValidateOffset(filters.Offset)

	listings, err := s.propositionDAO.ListAvailable(ctx, filters, utils.GetCurrentTimeMillis())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list propositions")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list propositions")
	}

	responses := make([]models.PropositionListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, listings[i].ToResponse())
	}
	return responses, nil
}

// GetProposition retrieves one proposition by ID
func (s *PropositionService) GetProposition(ctx context.Context, propositionID string) (*models.PropositionResponse, *serviceerror.ServiceError) {
	proposition, svcErr := s.getProposition(ctx, propositionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return proposition.ToResponse(), nil
}

// Request claims an AVAILABLE proposition for a health facility. The
// proposition moves to DISTRIBUTED and the underlying declaration follows
// in the same transaction, so a declaration only ever becomes DISTRIBUTED
// through a fulfilled proposition. Two facilities racing for the same
// proposition get at most one winner; the loser sees invalid_status.
func (s *PropositionService) Request(ctx context.Context, facilityID, propositionID string) (*models.PropositionResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, facilityID)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RoleHealthFacility {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot request propositions", actor.Role))
	}

	proposition, svcErr := s.getProposition(ctx, propositionID)
	if svcErr != nil {
		return nil, svcErr
	}

	now := utils.GetCurrentTimeMillis()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	rows, err := s.propositionDAO.RequestWithTx(ctx, tx, propositionID, facilityID, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to request proposition")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to request proposition")
	}
	if rows == 0 {
		return nil, s.propositionConflictError(ctx, propositionID)
	}

	rows, err = s.medicineDAO.UpdateStatusIfWithTx(ctx, tx, proposition.MedicineID,
		models.StatusApprovedForRedistribution, models.StatusDistributed, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to mark medicine distributed")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to request proposition")
	}
	if rows == 0 {
		// Proposition was claimable but the declaration never cleared
		// regulatory approval. Roll everything back.
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidStatusError,
			"the underlying declaration is not approved for redistribution")
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("Failed to commit proposition request")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to request proposition")
	}

	s.audit.RecordBestEffort(ctx, facilityID, models.ActionMedicineDistributed,
		EntityTypeProposition, &propositionID, map[string]interface{}{
			"medicine_id": proposition.MedicineID,
		})

	s.logger.WithFields(logrus.Fields{
		"proposition_id": propositionID,
		"facility_id":    facilityID,
	}).Info("Proposition distributed")

	updated, svcErr := s.getProposition(ctx, propositionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return updated.ToResponse(), nil
}

func (s *PropositionService) getProposition(ctx context.Context, propositionID string) (*models.MedicineProposition, *serviceerror.ServiceError) {
	proposition, err := s.propositionDAO.GetByID(ctx, propositionID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("proposition %s does not exist", propositionID))
		}
		s.logger.WithError(err).Error("Failed to get proposition")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to get proposition")
	}
	return proposition, nil
}

// propositionConflictError reports why the claim matched no row: the
// proposition is gone or no longer available.
func (s *PropositionService) propositionConflictError(ctx context.Context, propositionID string) *serviceerror.ServiceError {
	proposition, err := s.propositionDAO.GetByID(ctx, propositionID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("proposition %s does not exist", propositionID))
		}
		return serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to get proposition")
	}

	return serviceerror.CustomServiceError(serviceerror.InvalidStatusError,
		fmt.Sprintf("proposition is %s, operation requires %s", proposition.Status, models.PropositionAvailable))
}

func (s *PropositionService) resolveActor(ctx context.Context, actorID string) (*models.User, *serviceerror.ServiceError) {
	if actorID == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError, "actor identity is required")
	}

	actor, err := s.userDAO.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
				fmt.Sprintf("unknown actor: %s", actorID))
		}
		s.logger.WithError(err).Error("Failed to resolve actor")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to resolve actor")
	}
	if !actor.IsActive {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError, "actor account is deactivated")
	}

	return actor, nil
}

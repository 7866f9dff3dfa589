package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/dao"
	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/serviceerror"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// Audit entity types
const (
	EntityTypeMedicine    = "MEDICINE"
	EntityTypeProposition = "PROPOSITION"
)

// MedicineService handles business logic for the declaration lifecycle:
// citizen declaration, pharmacist verification, regulatory validation,
// owner cancellation and eligibility checks.
type MedicineService struct {
	medicineDAO    MedicineDAOInterface
	propositionDAO PropositionDAOInterface
	userDAO        UserDAOInterface
	audit          *AuditService
	db             *database.DB
	logger         *logrus.Logger
}

// NewMedicineService creates a new medicine service instance
func NewMedicineService(
	medicineDAO MedicineDAOInterface,
	propositionDAO PropositionDAOInterface,
	userDAO UserDAOInterface,
	audit *AuditService,
	db *database.DB,
	logger *logrus.Logger,
) *MedicineService {
	return &MedicineService{
		medicineDAO:    medicineDAO,
		propositionDAO: propositionDAO,
		userDAO:        userDAO,
		audit:          audit,
		db:             db,
		logger:         logger,
	}
}

// Declare creates a new declaration in SUBMITTED status. Validation runs
// before any persistence: a rejected declaration leaves no row and no
// audit entry behind.
func (s *MedicineService) Declare(ctx context.Context, citizenID string, req *models.MedicineAPIRequest) (*models.MedicineResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, citizenID)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RoleCitizen {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot declare medicines", actor.Role))
	}

	medicine, svcErr := s.buildDeclaration(citizenID, req)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.medicineDAO.Create(ctx, medicine); err != nil {
		s.logger.WithError(err).Error("Failed to persist medicine declaration")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to create declaration")
	}

	s.audit.RecordBestEffort(ctx, citizenID, models.ActionMedicineDeclared,
		EntityTypeMedicine, &medicine.MedicineID, map[string]interface{}{
			"declaration_code": medicine.DeclarationCode,
			"name":             medicine.Name,
			"status":           medicine.Status,
		})

	s.logger.WithFields(logrus.Fields{
		"medicine_id": medicine.MedicineID,
		"citizen_id":  citizenID,
	}).Info("Medicine declaration created")

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	return medicine.ToResponse(now, false), nil
}

// buildDeclaration validates the request field by field and assembles the
// declaration model. Field errors surface the machine code in the error
// field of the response body.
func (s *MedicineService) buildDeclaration(citizenID string, req *models.MedicineAPIRequest) (*models.MedicineDeclaration, *serviceerror.ServiceError) {
	data := req.AsMap()

	if fieldErr := utils.ValidateRequiredFields(data, []string{
		"name", "amm", "batch_number", "expiration_date", "quantity",
	}); fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	name, fieldErr := utils.ValidateStringField(data["name"], "name", 2, 200)
	if fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	amm, fieldErr := utils.ValidateStringField(data["amm"], "amm", 2, 50)
	if fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	batchNumber, fieldErr := utils.ValidateStringField(data["batch_number"], "batch_number", 1, 100)
	if fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	expiration, fieldErr := utils.ValidateDateField(data["expiration_date"], "expiration_date")
	if fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	if fieldErr := utils.ValidateDateNotExpired(expiration, now, "expiration_date"); fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	quantity, fieldErr := utils.ValidateIntegerField(data["quantity"], "quantity", 1)
	if fieldErr != nil {
		return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
	}

	isImported := false
	if raw, ok := data["is_imported"]; ok {
		isImported, fieldErr = utils.ValidateBooleanField(raw, "is_imported")
		if fieldErr != nil {
			return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
		}
	}

	var countryOfOrigin *string
	if raw, ok := data["country_of_origin"]; ok {
		country, fieldErr := utils.ValidateStringField(raw, "country_of_origin", 2, 100)
		if fieldErr != nil {
			return nil, serviceerror.FieldValidationError(fieldErr.Code, fieldErr.Message)
		}
		countryOfOrigin = &country
	}

	currentTime := utils.GetCurrentTimeMillis()
	return &models.MedicineDeclaration{
		MedicineID:      utils.GenerateMedicineID(),
		DeclarationCode: utils.GenerateDeclarationCode(),
		Name:            utils.SanitizeString(name),
		AMM:             utils.SanitizeString(amm),
		BatchNumber:     utils.SanitizeString(batchNumber),
		ExpirationDate:  utils.TimeToMillis(expiration),
		Quantity:        quantity,
		IsImported:      isImported,
		CountryOfOrigin: countryOfOrigin,
		Status:          models.StatusSubmitted,
		CitizenID:       citizenID,
		CreatedTime:     currentTime,
		UpdatedTime:     currentTime,
	}, nil
}

// Verify records a pharmacist review of a SUBMITTED declaration. Approval
// moves it to PHARMACY_VERIFIED and creates the redistribution proposition
// in the same transaction; rejection moves it to the terminal
// PHARMACY_REJECTED. A concurrent writer that moved the declaration first
// makes this call lose the compare-and-set and surface invalid_status.
func (s *MedicineService) Verify(ctx context.Context, pharmacistID, medicineID string, req *models.MedicineVerifyRequest) (*models.MedicineResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, pharmacistID)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RolePharmacist {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot verify declarations", actor.Role))
	}
	if req.Approved == nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, "approved is required")
	}

	toStatus := models.StatusPharmacyVerified
	action := models.ActionMedicineVerified
	if !*req.Approved {
		toStatus = models.StatusPharmacyRejected
		action = models.ActionMedicineRejected
	}

	var pharmacyID *string
	if pharmacy, err := s.userDAO.GetPharmacyByUser(ctx, pharmacistID); err == nil {
		pharmacyID = &pharmacy.PharmacyID
	}

	notes := notesPtr(req.Notes)
	now := utils.GetCurrentTimeMillis()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	rows, err := s.medicineDAO.UpdateVerificationWithTx(ctx, tx, medicineID,
		models.StatusSubmitted, toStatus, pharmacistID, pharmacyID, notes, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to update verification")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to verify declaration")
	}
	if rows == 0 {
		return nil, s.statusConflictError(ctx, medicineID, models.StatusSubmitted)
	}

	if toStatus == models.StatusPharmacyVerified {
		proposition := &models.MedicineProposition{
			PropositionID: utils.GeneratePropositionID(),
			MedicineID:    medicineID,
			Status:        models.PropositionAvailable,
			IsActive:      true,
			CreatedTime:   now,
			UpdatedTime:   now,
		}
		if err := s.propositionDAO.CreateWithTx(ctx, tx, proposition); err != nil {
			s.logger.WithError(err).Error("Failed to create proposition")
			return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to create proposition")
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("Failed to commit verification")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to verify declaration")
	}

	s.audit.RecordBestEffort(ctx, pharmacistID, action,
		EntityTypeMedicine, &medicineID, map[string]interface{}{
			"status": toStatus,
			"notes":  req.Notes,
		})

	return s.respondWithCurrent(ctx, medicineID, true)
}

// Validate records a regulatory decision on a PHARMACY_VERIFIED
// declaration. Regulatory authority is held by ADMIN users.
func (s *MedicineService) Validate(ctx context.Context, agentID, medicineID string, req *models.MedicineValidateRequest) (*models.MedicineResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, agentID)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RoleAdmin {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot validate declarations", actor.Role))
	}

	decision := models.RegulatoryDecision(strings.ToUpper(strings.TrimSpace(req.Decision)))
	if !decision.Valid() {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidDecisionError,
			fmt.Sprintf("decision must be one of %s, %s, %s",
				models.DecisionApproved, models.DecisionRestricted, models.DecisionRejected))
	}

	toStatus := decision.ToStatus()
	notes := notesPtr(req.Notes)
	now := utils.GetCurrentTimeMillis()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	rows, err := s.medicineDAO.UpdateRegulatoryWithTx(ctx, tx, medicineID,
		models.StatusPharmacyVerified, toStatus, agentID, notes, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to update regulatory decision")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to validate declaration")
	}
	if rows == 0 {
		return nil, s.statusConflictError(ctx, medicineID, models.StatusPharmacyVerified)
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("Failed to commit regulatory decision")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to validate declaration")
	}

	action := models.ActionMedicineApproved
	switch decision {
	case models.DecisionRestricted:
		action = models.ActionMedicineRestricted
	case models.DecisionRejected:
		action = models.ActionMedicineRegulatoryRejected
	}

	s.audit.RecordBestEffort(ctx, agentID, action,
		EntityTypeMedicine, &medicineID, map[string]interface{}{
			"decision": decision,
			"status":   toStatus,
			"notes":    req.Notes,
		})

	return s.respondWithCurrent(ctx, medicineID, true)
}

// Cancel lets the declaring citizen withdraw a declaration that has not
// entered review yet. Only SUBMITTED declarations can be cancelled.
func (s *MedicineService) Cancel(ctx context.Context, actorID, medicineID string) (*models.MedicineResponse, *serviceerror.ServiceError) {
	if _, svcErr := s.resolveActor(ctx, actorID); svcErr != nil {
		return nil, svcErr
	}

	medicine, svcErr := s.getDeclaration(ctx, medicineID)
	if svcErr != nil {
		return nil, svcErr
	}
	if medicine.CitizenID != actorID {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"only the declaring citizen can cancel a declaration")
	}

	now := utils.GetCurrentTimeMillis()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	rows, err := s.medicineDAO.UpdateStatusIfWithTx(ctx, tx, medicineID,
		models.StatusSubmitted, models.StatusCancelled, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to cancel declaration")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to cancel declaration")
	}
	if rows == 0 {
		return nil, s.statusConflictError(ctx, medicineID, models.StatusSubmitted)
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("Failed to commit cancellation")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to cancel declaration")
	}

	s.audit.RecordBestEffort(ctx, actorID, models.ActionMedicineCancelled,
		EntityTypeMedicine, &medicineID, nil)

	return s.respondWithCurrent(ctx, medicineID, false)
}

// CheckEligibility evaluates the redistribution eligibility of a
// declaration without mutating anything.
func (s *MedicineService) CheckEligibility(ctx context.Context, medicineID string) (*models.EligibilityResponse, *serviceerror.ServiceError) {
	medicine, svcErr := s.getDeclaration(ctx, medicineID)
	if svcErr != nil {
		return nil, svcErr
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	return &models.EligibilityResponse{
		MedicineID: medicine.MedicineID,
		IsEligible: medicine.CanBeRedistributed(now),
		Reasons:    medicine.EligibilityReasons(now),
	}, nil
}

// GetDeclaration retrieves one declaration. The owner sees the public
// view; pharmacists and admins additionally see review notes and safety
// fields. Other citizens are denied.
func (s *MedicineService) GetDeclaration(ctx context.Context, actorID, medicineID string) (*models.MedicineResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, actorID)
	if svcErr != nil {
		return nil, svcErr
	}

	medicine, svcErr := s.getDeclaration(ctx, medicineID)
	if svcErr != nil {
		return nil, svcErr
	}

	includeSensitive := actor.Role == models.RolePharmacist || actor.Role == models.RoleAdmin
	if !includeSensitive && medicine.CitizenID != actorID {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"declaration belongs to another citizen")
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	return medicine.ToResponse(now, includeSensitive), nil
}

// ListMyDeclarations returns the actor's own declarations, newest first
func (s *MedicineService) ListMyDeclarations(ctx context.Context, citizenID string, limit, offset int) ([]models.MedicineResponse, *serviceerror.ServiceError) {
	if _, svcErr := s.resolveActor(ctx, citizenID); svcErr != nil {
		return nil, svcErr
	}

	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	medicines, err := s.medicineDAO.ListByCitizen(ctx, citizenID, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list citizen declarations")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list declarations")
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	responses := make([]models.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		responses = append(responses, *medicines[i].ToResponse(now, false))
	}
	return responses, nil
}

// ListPendingPharmacyReview returns SUBMITTED declarations awaiting a
// pharmacist, oldest first.
func (s *MedicineService) ListPendingPharmacyReview(ctx context.Context, actorID string, limit, offset int) ([]models.MedicineResponse, *serviceerror.ServiceError) {
	actor, svcErr := s.resolveActor(ctx, actorID)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RolePharmacist && actor.Role != models.RoleAdmin {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("role %s cannot list the review queue", actor.Role))
	}

	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	medicines, err := s.medicineDAO.ListByStatus(ctx, models.StatusSubmitted, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list pending declarations")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list declarations")
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	responses := make([]models.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		responses = append(responses, *medicines[i].ToResponse(now, true))
	}
	return responses, nil
}

// resolveActor loads the acting user and rejects unknown or deactivated
// accounts.
func (s *MedicineService) resolveActor(ctx context.Context, actorID string) (*models.User, *serviceerror.ServiceError) {
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

// getDeclaration loads a declaration, mapping a missing row to not_found.
func (s *MedicineService) getDeclaration(ctx context.Context, medicineID string) (*models.MedicineDeclaration, *serviceerror.ServiceError) {
	medicine, err := s.medicineDAO.GetByID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("declaration %s does not exist", medicineID))
		}
		s.logger.WithError(err).Error("Failed to get declaration")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to get declaration")
	}
	return medicine, nil
}

// statusConflictError reports why a compare-and-set transition matched no
// row: either the declaration does not exist, or it is no longer in the
// required status. The current status is included so the actor can see
// what happened.
func (s *MedicineService) statusConflictError(ctx context.Context, medicineID string, required models.MedicineStatus) *serviceerror.ServiceError {
	medicine, err := s.medicineDAO.GetByID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("declaration %s does not exist", medicineID))
		}
		return serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to get declaration")
	}

	return serviceerror.CustomServiceError(serviceerror.InvalidStatusError,
		fmt.Sprintf("declaration is %s, operation requires %s", medicine.Status, required))
}

// respondWithCurrent re-reads the declaration after a committed transition
// and builds the response from the persisted row.
func (s *MedicineService) respondWithCurrent(ctx context.Context, medicineID string, includeSensitive bool) (*models.MedicineResponse, *serviceerror.ServiceError) {
	medicine, svcErr := s.getDeclaration(ctx, medicineID)
	if svcErr != nil {
		return nil, svcErr
	}
	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	return medicine.ToResponse(now, includeSensitive), nil
}

func notesPtr(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

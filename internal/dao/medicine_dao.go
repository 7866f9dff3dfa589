package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// ErrNotFound is wrapped by DAO lookups when no row matches, so callers can
// tell a missing record apart from an infrastructure failure.
var ErrNotFound = errors.New("record not found")

const medicineColumns = `
	MEDICINE_ID, DECLARATION_CODE, NAME, AMM, BATCH_NUMBER, EXPIRATION_DATE,
	QUANTITY, IS_IMPORTED, COUNTRY_OF_ORIGIN, IS_RECALLED, SAFETY_RATING,
	STATUS, CITIZEN_ID, PHARMACY_ID,
	PHARMACY_VERIFIED_AT, PHARMACY_VERIFIED_BY, PHARMACY_NOTES,
	REGULATORY_VALIDATED_AT, REGULATORY_VALIDATED_BY, REGULATORY_NOTES,
	CREATED_TIME, UPDATED_TIME`

// MedicineDAO handles database operations for medicine declarations
type MedicineDAO struct {
	db *database.DB
}

// NewMedicineDAO creates a new MedicineDAO instance
func NewMedicineDAO(db *database.DB) *MedicineDAO {
	return &MedicineDAO{db: db}
}

// Create inserts a new medicine declaration
func (dao *MedicineDAO) Create(ctx context.Context, medicine *models.MedicineDeclaration) error {
	query := `
		INSERT INTO MEDICINES (
			MEDICINE_ID, DECLARATION_CODE, NAME, AMM, BATCH_NUMBER, EXPIRATION_DATE,
			QUANTITY, IS_IMPORTED, COUNTRY_OF_ORIGIN, IS_RECALLED, SAFETY_RATING,
			STATUS, CITIZEN_ID, CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		medicine.MedicineID,
		medicine.DeclarationCode,
		medicine.Name,
		medicine.AMM,
		medicine.BatchNumber,
		medicine.ExpirationDate,
		medicine.Quantity,
		medicine.IsImported,
		medicine.CountryOfOrigin,
		medicine.IsRecalled,
		medicine.SafetyRating,
		medicine.Status,
		medicine.CitizenID,
		medicine.CreatedTime,
		medicine.UpdatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create medicine declaration: %w", err)
	}

	return nil
}

// GetByID retrieves a medicine declaration by ID
func (dao *MedicineDAO) GetByID(ctx context.Context, medicineID string) (*models.MedicineDeclaration, error) {
	query := `SELECT ` + medicineColumns + ` FROM MEDICINES WHERE MEDICINE_ID = ?`

	var medicine models.MedicineDeclaration
	err := dao.db.GetContext(ctx, &medicine, query, medicineID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("medicine declaration %s: %w", medicineID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get medicine declaration: %w", err)
	}

	return &medicine, nil
}

// ListByCitizen retrieves declarations created by a citizen, newest first
func (dao *MedicineDAO) ListByCitizen(ctx context.Context, citizenID string, limit, offset int) ([]models.MedicineDeclaration, error) {
	query := `SELECT ` + medicineColumns + `
		FROM MEDICINES
		WHERE CITIZEN_ID = ?
		ORDER BY CREATED_TIME DESC
		LIMIT ? OFFSET ?`

	medicines := []models.MedicineDeclaration{}
	err := dao.db.SelectContext(ctx, &medicines, query, citizenID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list declarations by citizen: %w", err)
	}

	return medicines, nil
}

// ListByStatus retrieves declarations in a given status, oldest first so
// reviewers work through the backlog in arrival order
func (dao *MedicineDAO) ListByStatus(ctx context.Context, status models.MedicineStatus, limit, offset int) ([]models.MedicineDeclaration, error) {
	query := `SELECT ` + medicineColumns + `
		FROM MEDICINES
		WHERE STATUS = ?
		ORDER BY CREATED_TIME ASC
		LIMIT ? OFFSET ?`

	medicines := []models.MedicineDeclaration{}
	err := dao.db.SelectContext(ctx, &medicines, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list declarations by status: %w", err)
	}

	return medicines, nil
}

// UpdateVerificationWithTx records a pharmacist review. The status predicate
// makes the update a compare-and-set: zero rows affected means another writer
// moved the declaration out of fromStatus first.
func (dao *MedicineDAO) UpdateVerificationWithTx(
	ctx context.Context,
	tx *database.Transaction,
	medicineID string,
	fromStatus, toStatus models.MedicineStatus,
	pharmacistID string,
	pharmacyID *string,
	notes *string,
	now int64,
) (int64, error) {
	query := `
		UPDATE MEDICINES
		SET STATUS = ?,
		    PHARMACY_VERIFIED_AT = ?,
		    PHARMACY_VERIFIED_BY = ?,
		    PHARMACY_ID = ?,
		    PHARMACY_NOTES = ?,
		    UPDATED_TIME = ?
		WHERE MEDICINE_ID = ? AND STATUS = ?
	`

	result, err := tx.ExecContext(ctx, query, toStatus, now, pharmacistID, pharmacyID, notes, now, medicineID, fromStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to update verification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// UpdateRegulatoryWithTx records a regulatory decision using the same
// compare-and-set predicate as UpdateVerificationWithTx.
func (dao *MedicineDAO) UpdateRegulatoryWithTx(
	ctx context.Context,
	tx *database.Transaction,
	medicineID string,
	fromStatus, toStatus models.MedicineStatus,
	regulatorID string,
	notes *string,
	now int64,
) (int64, error) {
	query := `
		UPDATE MEDICINES
		SET STATUS = ?,
		    REGULATORY_VALIDATED_AT = ?,
		    REGULATORY_VALIDATED_BY = ?,
		    REGULATORY_NOTES = ?,
		    UPDATED_TIME = ?
		WHERE MEDICINE_ID = ? AND STATUS = ?
	`

	result, err := tx.ExecContext(ctx, query, toStatus, now, regulatorID, notes, now, medicineID, fromStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to update regulatory decision: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// UpdateStatusIfWithTx performs a bare compare-and-set status transition.
// Used for owner cancellation and for marking a declaration distributed.
func (dao *MedicineDAO) UpdateStatusIfWithTx(
	ctx context.Context,
	tx *database.Transaction,
	medicineID string,
	fromStatus, toStatus models.MedicineStatus,
	now int64,
) (int64, error) {
	query := `
		UPDATE MEDICINES
		SET STATUS = ?, UPDATED_TIME = ?
		WHERE MEDICINE_ID = ? AND STATUS = ?
	`

	result, err := tx.ExecContext(ctx, query, toStatus, now, medicineID, fromStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to update medicine status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

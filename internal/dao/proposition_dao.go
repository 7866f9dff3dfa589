package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

const propositionColumns = `
	PROPOSITION_ID, MEDICINE_ID, STATUS, IS_ACTIVE, EXPIRED_AT,
	REQUESTING_FACILITY_ID, REQUESTED_AT, CREATED_TIME, UPDATED_TIME`

// PropositionDAO handles database operations for redistribution propositions
type PropositionDAO struct {
	db *database.DB
}

// NewPropositionDAO creates a new PropositionDAO instance
func NewPropositionDAO(db *database.DB) *PropositionDAO {
	return &PropositionDAO{db: db}
}

// CreateWithTx inserts a new proposition using a transaction
func (dao *PropositionDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, proposition *models.MedicineProposition) error {
	query := `
		INSERT INTO MEDICINE_PROPOSITIONS (
			PROPOSITION_ID, MEDICINE_ID, STATUS, IS_ACTIVE, EXPIRED_AT,
			REQUESTING_FACILITY_ID, REQUESTED_AT, CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		proposition.PropositionID,
		proposition.MedicineID,
		proposition.Status,
		proposition.IsActive,
		proposition.ExpiredAt,
		proposition.RequestingFacilityID,
		proposition.RequestedAt,
		proposition.CreatedTime,
		proposition.UpdatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create proposition with transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a proposition by ID
func (dao *PropositionDAO) GetByID(ctx context.Context, propositionID string) (*models.MedicineProposition, error) {
	query := `SELECT ` + propositionColumns + ` FROM MEDICINE_PROPOSITIONS WHERE PROPOSITION_ID = ?`

	var proposition models.MedicineProposition
	err := dao.db.GetContext(ctx, &proposition, query, propositionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("proposition %s: %w", propositionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get proposition: %w", err)
	}

	return &proposition, nil
}

// ListAvailable retrieves active AVAILABLE propositions whose medicine has
// cleared regulatory approval and has not yet expired. Filters narrow by
// pharmacy city and optionally sort by soonest medicine expiry.
func (dao *PropositionDAO) ListAvailable(ctx context.Context, filters models.PropositionFilters, now int64) ([]models.PropositionListing, error) {
	query := `
		SELECT p.PROPOSITION_ID, p.MEDICINE_ID, p.STATUS, p.IS_ACTIVE, p.CREATED_TIME,
		       m.NAME, m.AMM, m.BATCH_NUMBER, m.QUANTITY, m.EXPIRATION_DATE,
		       ph.NAME AS PHARMACY_NAME, ph.CITY AS PHARMACY_CITY
		FROM MEDICINE_PROPOSITIONS p
		JOIN MEDICINES m ON m.MEDICINE_ID = p.MEDICINE_ID
		LEFT JOIN PHARMACIES ph ON ph.PHARMACY_ID = m.PHARMACY_ID
		WHERE p.STATUS = ? AND p.IS_ACTIVE = TRUE
		  AND m.STATUS = ? AND m.EXPIRATION_DATE > ?
	`

	args := []interface{}{models.PropositionAvailable, models.StatusApprovedForRedistribution, now}

	if filters.City != "" {
		query += ` AND ph.CITY = ?`
		args = append(args, filters.City)
	}

	if filters.SortByExpiry {
		query += ` ORDER BY m.EXPIRATION_DATE ASC`
	} else {
		query += ` ORDER BY p.CREATED_TIME DESC`
	}

	query += ` LIMIT ? OFFSET ?`
	args = append(args, filters.Limit, filters.Offset)

	listings := []models.PropositionListing{}
	err := dao.db.SelectContext(ctx, &listings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list available propositions: %w", err)
	}

	return listings, nil
}

// RequestWithTx claims a proposition for a facility. The status and active
// predicates make the claim a compare-and-set: zero rows affected means the
// proposition was already taken, expired, or deactivated.
func (dao *PropositionDAO) RequestWithTx(
	ctx context.Context,
	tx *database.Transaction,
	propositionID, facilityID string,
	now int64,
) (int64, error) {
	query := `
		UPDATE MEDICINE_PROPOSITIONS
		SET STATUS = ?,
		    IS_ACTIVE = FALSE,
		    REQUESTING_FACILITY_ID = ?,
		    REQUESTED_AT = ?,
		    UPDATED_TIME = ?
		WHERE PROPOSITION_ID = ? AND STATUS = ? AND IS_ACTIVE = TRUE
	`

	result, err := tx.ExecContext(ctx, query,
		models.PropositionDistributed, facilityID, now, now,
		propositionID, models.PropositionAvailable,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to request proposition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// SweepExpiredWithTx expires every active AVAILABLE proposition whose
// medicine expiration date has passed. A single joined update keeps the
// sweep atomic and safe to re-run.
func (dao *PropositionDAO) SweepExpiredWithTx(ctx context.Context, tx *database.Transaction, now int64) (int64, error) {
	query := `
		UPDATE MEDICINE_PROPOSITIONS p
		JOIN MEDICINES m ON m.MEDICINE_ID = p.MEDICINE_ID
		SET p.STATUS = ?,
		    p.IS_ACTIVE = FALSE,
		    p.EXPIRED_AT = ?,
		    p.UPDATED_TIME = ?
		WHERE p.STATUS = ? AND p.IS_ACTIVE = TRUE
		  AND m.EXPIRATION_DATE < ?
	`

	result, err := tx.ExecContext(ctx, query,
		models.PropositionExpired, now, now,
		models.PropositionAvailable, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired propositions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

package service

import (
	"context"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// MedicineDAOInterface defines the data access operations for medicine
// declarations, implemented by dao.MedicineDAO and mocked in tests.
type MedicineDAOInterface interface {
	Create(ctx context.Context, medicine *models.MedicineDeclaration) error
	GetByID(ctx context.Context, medicineID string) (*models.MedicineDeclaration, error)
	ListByCitizen(ctx context.Context, citizenID string, limit, offset int) ([]models.MedicineDeclaration, error)
	ListByStatus(ctx context.Context, status models.MedicineStatus, limit, offset int) ([]models.MedicineDeclaration, error)
	UpdateVerificationWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, pharmacistID string, pharmacyID *string, notes *string, now int64) (int64, error)
	UpdateRegulatoryWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, regulatorID string, notes *string, now int64) (int64, error)
	UpdateStatusIfWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, now int64) (int64, error)
}

// PropositionDAOInterface defines the data access operations for
// redistribution propositions.
type PropositionDAOInterface interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, proposition *models.MedicineProposition) error
	GetByID(ctx context.Context, propositionID string) (*models.MedicineProposition, error)
	ListAvailable(ctx context.Context, filters models.PropositionFilters, now int64) ([]models.PropositionListing, error)
	RequestWithTx(ctx context.Context, tx *database.Transaction, propositionID, facilityID string, now int64) (int64, error)
	SweepExpiredWithTx(ctx context.Context, tx *database.Transaction, now int64) (int64, error)
}

// AuditLogDAOInterface defines the data access operations for the
// append-only audit log.
type AuditLogDAOInterface interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]models.AuditLogEntry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.AuditLogEntry, error)
}

// UserDAOInterface defines the data access operations for users and
// pharmacies.
type UserDAOInterface interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetPharmacyByUser(ctx context.Context, userID string) (*models.Pharmacy, error)
}

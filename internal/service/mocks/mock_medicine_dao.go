package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// MockMedicineDAO is a mock implementation of MedicineDAOInterface
type MockMedicineDAO struct {
	mock.Mock
}

func (m *MockMedicineDAO) Create(ctx context.Context, medicine *models.MedicineDeclaration) error {
	args := m.Called(ctx, medicine)
	return args.Error(0)
}

func (m *MockMedicineDAO) GetByID(ctx context.Context, medicineID string) (*models.MedicineDeclaration, error) {
	args := m.Called(ctx, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MedicineDeclaration), args.Error(1)
}

func (m *MockMedicineDAO) ListByCitizen(ctx context.Context, citizenID string, limit, offset int) ([]models.MedicineDeclaration, error) {
	args := m.Called(ctx, citizenID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MedicineDeclaration), args.Error(1)
}

func (m *MockMedicineDAO) ListByStatus(ctx context.Context, status models.MedicineStatus, limit, offset int) ([]models.MedicineDeclaration, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MedicineDeclaration), args.Error(1)
}

func (m *MockMedicineDAO) UpdateVerificationWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, pharmacistID string, pharmacyID *string, notes *string, now int64) (int64, error) {
	args := m.Called(ctx, tx, medicineID, fromStatus, toStatus, pharmacistID, pharmacyID, notes, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMedicineDAO) UpdateRegulatoryWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, regulatorID string, notes *string, now int64) (int64, error) {
	args := m.Called(ctx, tx, medicineID, fromStatus, toStatus, regulatorID, notes, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMedicineDAO) UpdateStatusIfWithTx(ctx context.Context, tx *database.Transaction, medicineID string, fromStatus, toStatus models.MedicineStatus, now int64) (int64, error) {
	args := m.Called(ctx, tx, medicineID, fromStatus, toStatus, now)
	return args.Get(0).(int64), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// MockPropositionDAO is a mock implementation of PropositionDAOInterface
type MockPropositionDAO struct {
	mock.Mock
}

func (m *MockPropositionDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, proposition *models.MedicineProposition) error {
	args := m.Called(ctx, tx, proposition)
	return args.Error(0)
}

func (m *MockPropositionDAO) GetByID(ctx context.Context, propositionID string) (*models.MedicineProposition, error) {
	args := m.Called(ctx, propositionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MedicineProposition), args.Error(1)
}

func (m *MockPropositionDAO) ListAvailable(ctx context.Context, filters models.PropositionFilters, now int64) ([]models.PropositionListing, error) {
	args := m.Called(ctx, filters, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropositionListing), args.Error(1)
}

func (m *MockPropositionDAO) RequestWithTx(ctx context.Context, tx *database.Transaction, propositionID, facilityID string, now int64) (int64, error) {
	args := m.Called(ctx, tx, propositionID, facilityID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropositionDAO) SweepExpiredWithTx(ctx context.Context, tx *database.Transaction, now int64) (int64, error) {
	args := m.Called(ctx, tx, now)
	return args.Get(0).(int64), args.Error(1)
}

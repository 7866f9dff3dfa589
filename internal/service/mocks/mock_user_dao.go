package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// MockUserDAO is a mock implementation of UserDAOInterface
type MockUserDAO struct {
	mock.Mock
}

func (m *MockUserDAO) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDAO) GetPharmacyByUser(ctx context.Context, userID string) (*models.Pharmacy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pharmacy), args.Error(1)
}

// MockAuditLogDAO is a mock implementation of AuditLogDAOInterface
type MockAuditLogDAO struct {
	mock.Mock
}

func (m *MockAuditLogDAO) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogDAO) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]models.AuditLogEntry, error) {
	args := m.Called(ctx, entityType, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogEntry), args.Error(1)
}

func (m *MockAuditLogDAO) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.AuditLogEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogEntry), args.Error(1)
}

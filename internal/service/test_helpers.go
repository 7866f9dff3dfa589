package service

import (
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/service/mocks"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// TestSetup contains common test dependencies
type TestSetup struct {
	MockMedicineDAO    *mocks.MockMedicineDAO
	MockPropositionDAO *mocks.MockPropositionDAO
	MockUserDAO        *mocks.MockUserDAO
	MockAuditDAO       *mocks.MockAuditLogDAO
	Logger             *logrus.Logger
}

// NewTestSetup creates a new test setup with mocks
func NewTestSetup() *TestSetup {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &TestSetup{
		MockMedicineDAO:    &mocks.MockMedicineDAO{},
		MockPropositionDAO: &mocks.MockPropositionDAO{},
		MockUserDAO:        &mocks.MockUserDAO{},
		MockAuditDAO:       &mocks.MockAuditLogDAO{},
		Logger:             logger,
	}
}

// newMockDB builds a database handle backed by sqlmock so transaction
// flows can be exercised without a real server.
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	rawDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { rawDB.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return database.NewWithDB(sqlx.NewDb(rawDB, "sqlmock"), logger), mock
}

// Helper to create an active user with the given role
func activeUser(userID string, role models.Role) *models.User {
	return &models.User{
		UserID:      userID,
		Username:    "user-" + userID,
		Email:       userID + "@example.tn",
		Role:        role,
		IsActive:    true,
		CreatedTime: utils.GetCurrentTimeMillis(),
	}
}

// Helper to create a SUBMITTED declaration owned by the given citizen
func submittedDeclaration(medicineID, citizenID string) *models.MedicineDeclaration {
	now := utils.GetCurrentTimeMillis()
	return &models.MedicineDeclaration{
		MedicineID:      medicineID,
		DeclarationCode: "DECL-TEST0001",
		Name:            "Aspirin",
		AMM:             "AMM12345",
		BatchNumber:     "BATCH001",
		ExpirationDate:  utils.DaysFromNow(30),
		Quantity:        10,
		Status:          models.StatusSubmitted,
		CitizenID:       citizenID,
		CreatedTime:     now,
		UpdatedTime:     now,
	}
}

// Helper to create a valid declare request
func newValidDeclareRequest() *models.MedicineAPIRequest {
	return &models.MedicineAPIRequest{
		Name:           "Aspirin",
		AMM:            "AMM12345",
		BatchNumber:    "BATCH001",
		ExpirationDate: utils.FormatTime(utils.MillisToTime(utils.DaysFromNow(30))),
		Quantity:       float64(10),
	}
}

// Helper to create a pointer to a string
func strPtr(s string) *string {
	return &s
}

// Helper to create a pointer to a bool
func boolPtr(b bool) *bool {
	return &b
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dhouhaelaouni/tunimed/internal/dao"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

func newAuditService(setup *TestSetup) *AuditService {
	return NewAuditService(setup.MockAuditDAO, setup.MockUserDAO, setup.Logger)
}

func TestRecord_PersistsEntry(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "pharm-1").
		Return(activeUser("pharm-1", models.RolePharmacist), nil)
	setup.MockAuditDAO.On("Create", mock.Anything, mock.MatchedBy(func(e *models.AuditLogEntry) bool {
		return e.UserID == "pharm-1" &&
			e.Action == models.ActionMedicineVerified &&
			e.EntityType == EntityTypeMedicine &&
			e.EntityID != nil && *e.EntityID == "MED-1" &&
			e.AuditID != "" &&
			len(e.Details) > 0
	})).Return(nil)

	entry, err := svc.Record(context.Background(), "pharm-1", models.ActionMedicineVerified,
		EntityTypeMedicine, strPtr("MED-1"), map[string]interface{}{"status": "PHARMACY_VERIFIED"})

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.NotZero(t, entry.CreatedTime)
	setup.MockAuditDAO.AssertExpectations(t)
}

func TestRecord_RejectsEmptyActor(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	entry, err := svc.Record(context.Background(), "", models.ActionMedicineDeclared,
		EntityTypeMedicine, nil, nil)

	assert.Nil(t, entry)
	assert.Error(t, err)
	setup.MockAuditDAO.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecord_RejectsEmptyEntityType(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	entry, err := svc.Record(context.Background(), "pharm-1", models.ActionMedicineDeclared, "", nil, nil)

	assert.Nil(t, entry)
	assert.Error(t, err)
}

func TestRecord_RejectsUnknownAction(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	entry, err := svc.Record(context.Background(), "pharm-1", models.ActionType("MEDICINE_TELEPORTED"),
		EntityTypeMedicine, nil, nil)

	assert.Nil(t, entry)
	assert.Error(t, err)
	setup.MockUserDAO.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRecord_RejectsUnknownActor(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "ghost").
		Return(nil, dao.ErrNotFound)

	entry, err := svc.Record(context.Background(), "ghost", models.ActionMedicineDeclared,
		EntityTypeMedicine, nil, nil)

	assert.Nil(t, entry)
	assert.Error(t, err)
	setup.MockAuditDAO.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordBestEffort_SwallowsWriteFailure(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "pharm-1").
		Return(activeUser("pharm-1", models.RolePharmacist), nil)
	setup.MockAuditDAO.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	assert.NotPanics(t, func() {
		svc.RecordBestEffort(context.Background(), "pharm-1", models.ActionMedicineVerified,
			EntityTypeMedicine, strPtr("MED-1"), nil)
	})
	setup.MockAuditDAO.AssertExpectations(t)
}

func TestGetEntityTrail_AllowsPharmacist(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "pharm-1").
		Return(activeUser("pharm-1", models.RolePharmacist), nil)
	setup.MockAuditDAO.On("ListByEntity", mock.Anything, EntityTypeMedicine, "MED-1", 20, 0).
		Return([]models.AuditLogEntry{{AuditID: "AUDIT-1", UserID: "pharm-1"}}, nil)

	entries, svcErr := svc.GetEntityTrail(context.Background(), "pharm-1", EntityTypeMedicine, "MED-1", 0, 0)

	assert.Nil(t, svcErr)
	assert.Len(t, entries, 1)
}

func TestGetEntityTrail_ForbidsCitizen(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "citizen-1").
		Return(activeUser("citizen-1", models.RoleCitizen), nil)

	entries, svcErr := svc.GetEntityTrail(context.Background(), "citizen-1", EntityTypeMedicine, "MED-1", 20, 0)

	assert.Nil(t, entries)
	assert.NotNil(t, svcErr)
	assert.Equal(t, "forbidden", svcErr.Error)
	setup.MockAuditDAO.AssertNotCalled(t, "ListByEntity",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserTrail_AdminOnly(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "pharm-1").
		Return(activeUser("pharm-1", models.RolePharmacist), nil)

	entries, svcErr := svc.GetUserTrail(context.Background(), "pharm-1", "citizen-1", 20, 0)

	assert.Nil(t, entries)
	assert.NotNil(t, svcErr)
	assert.Equal(t, "forbidden", svcErr.Error)
}

func TestGetUserTrail_ReturnsEntries(t *testing.T) {
	setup := NewTestSetup()
	svc := newAuditService(setup)

	setup.MockUserDAO.On("GetByID", mock.Anything, "admin-1").
		Return(activeUser("admin-1", models.RoleAdmin), nil)
	setup.MockAuditDAO.On("ListByUser", mock.Anything, "citizen-1", 20, 0).
		Return([]models.AuditLogEntry{
			{AuditID: "AUDIT-2", UserID: "citizen-1", Action: models.ActionMedicineDeclared},
		}, nil)

	entries, svcErr := svc.GetUserTrail(context.Background(), "admin-1", "citizen-1", 20, 0)

	assert.Nil(t, svcErr)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.ActionMedicineDeclared, entries[0].Action)
}

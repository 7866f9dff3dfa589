package dao

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

func TestPropositionGetByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)

	mock.ExpectQuery("SELECT (.+) FROM MEDICINE_PROPOSITIONS WHERE PROPOSITION_ID = \\?").
		WithArgs("PROP-missing").
		WillReturnError(sql.ErrNoRows)

	proposition, err := dao.GetByID(context.Background(), "PROP-missing")

	assert.Nil(t, proposition)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRequestWithTx_ClaimsAvailableRow(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)
	now := utils.GetCurrentTimeMillis()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE MEDICINE_PROPOSITIONS").
		WithArgs(models.PropositionDistributed, "facility-1", now, now,
			"PROP-1", models.PropositionAvailable).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.BeginTx(context.Background())
	assert.NoError(t, err)

	rows, err := dao.RequestWithTx(context.Background(), tx, "PROP-1", "facility-1", now)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestWithTx_AlreadyClaimed(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)
	now := utils.GetCurrentTimeMillis()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE MEDICINE_PROPOSITIONS").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.BeginTx(context.Background())
	assert.NoError(t, err)

	rows, err := dao.RequestWithTx(context.Background(), tx, "PROP-1", "facility-2", now)

	assert.NoError(t, err)
	assert.Zero(t, rows)
}

func TestSweepExpiredWithTx(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)
	now := utils.GetCurrentTimeMillis()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE MEDICINE_PROPOSITIONS p\\s+JOIN MEDICINES m").
		WithArgs(models.PropositionExpired, now, now, models.PropositionAvailable, now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	tx, err := db.BeginTx(context.Background())
	assert.NoError(t, err)

	rows, err := dao.SweepExpiredWithTx(context.Background(), tx, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable_FiltersAndSorts(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)
	now := utils.GetCurrentTimeMillis()

	columns := []string{
		"PROPOSITION_ID", "MEDICINE_ID", "STATUS", "IS_ACTIVE", "CREATED_TIME",
		"NAME", "AMM", "BATCH_NUMBER", "QUANTITY", "EXPIRATION_DATE",
		"PHARMACY_NAME", "PHARMACY_CITY",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"PROP-1", "MED-1", models.PropositionAvailable, true, now,
		"Aspirin", "AMM12345", "BATCH001", 10, utils.DaysFromNow(30),
		"Central", "Tunis",
	)

	mock.ExpectQuery("SELECT p\\.PROPOSITION_ID, (.+) AND ph\\.CITY = \\? ORDER BY m\\.EXPIRATION_DATE ASC").
		WithArgs(models.PropositionAvailable, models.StatusApprovedForRedistribution, now, "Tunis", 20, 0).
		WillReturnRows(rows)

	listings, err := dao.ListAvailable(context.Background(), models.PropositionFilters{
		City:         "Tunis",
		SortByExpiry: true,
		Limit:        20,
		Offset:       0,
	}, now)

	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, "PROP-1", listings[0].PropositionID)
	assert.Equal(t, "Aspirin", listings[0].MedicineName)
	assert.Equal(t, "Tunis", *listings[0].PharmacyCity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable_NoFilters(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewPropositionDAO(db)
	now := utils.GetCurrentTimeMillis()

	mock.ExpectQuery("SELECT p\\.PROPOSITION_ID, (.+) ORDER BY p\\.CREATED_TIME DESC").
		WithArgs(models.PropositionAvailable, models.StatusApprovedForRedistribution, now, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"PROPOSITION_ID", "MEDICINE_ID", "STATUS", "IS_ACTIVE", "CREATED_TIME",
			"NAME", "AMM", "BATCH_NUMBER", "QUANTITY", "EXPIRATION_DATE",
			"PHARMACY_NAME", "PHARMACY_CITY",
		}))

	listings, err := dao.ListAvailable(context.Background(), models.PropositionFilters{Limit: 20}, now)

	assert.NoError(t, err)
	assert.Empty(t, listings)
}

package dao

import (
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/database"
)

func newTestDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
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

package database

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create mock database")
	t.Cleanup(func() { mockDB.Close() })

	return postgres.NewClientFromDB(sqlx.NewDb(mockDB, "postgres")), mock
}

func driverArgs(args []interface{}) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return values
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upsertQ = `(?s)^\s*INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*name\).*ON CONFLICT \(email\) DO UPDATE.*RETURNING id\s*$`

func TestUpsertSeedUser_ReturnsStoredID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// existing row keeps its id
	mock.ExpectQuery(upsertQ).
		WithArgs("new-id", "demo@example.com", "hash", "Demo").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("old-id"))

	id, err := UpsertSeedUser(context.Background(), db, SeedUser{
		ID: "new-id", Email: "demo@example.com", Name: "Demo", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "old-id", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSeedUser_DBError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(upsertQ).WillReturnError(errors.New("db down"))

	_, err = UpsertSeedUser(context.Background(), db, SeedUser{ID: "x", Email: "e"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed user: db down")
}

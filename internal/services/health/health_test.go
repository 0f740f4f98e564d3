package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, map[string]bool{"ok": true}, NewService(nil).Status())
}

func TestReadyMemory(t *testing.T) {
	got, err := NewService(nil).Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "memory", got["ledger"])
}

func TestReadyPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	got, err := NewService(db).Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "postgres", got["ledger"])

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	got, err = NewService(db).Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, false, got["ok"])
	require.NoError(t, mock.ExpectationsWereMet())
}

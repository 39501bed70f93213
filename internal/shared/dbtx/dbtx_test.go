package dbtx

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type widget struct {
	ID   string
	Name string
}

func TestConn_RoutesThroughTx(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "widgets" SET "name"=$1 WHERE id = $2`)).
		WithArgs("renamed", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	res := Conn(context.Background(), gdb, tx).Model(&widget{}).Where("id = ?", "w-1").Update("name", "renamed")
	require.NoError(t, res.Error)
	assert.EqualValues(t, 1, res.RowsAffected)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

package profile

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	profileerrors "go-leaveflow/internal/profile/errors"
)

func setupRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

func TestRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("none filter selects missing roles", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE role IS NULL ORDER BY created_at DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
				AddRow(uuid.NewString(), "a@example.com", nil))

		profiles, err := repo.FindAll(ctx, RoleFilterNone)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Nil(t, profiles[0].Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("role filter", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE role = $1 ORDER BY created_at DESC`)).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))

		profiles, err := repo.FindAll(ctx, "admin")
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})
}

func TestRepository_FindRoleByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT .* FROM "profiles" WHERE id = \$1`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindRoleByUserID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	})

	t.Run("rejects malformed id without querying", func(t *testing.T) {
		repo, mock := setupRepo(t)

		_, err := repo.FindRoleByUserID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, profileerrors.ErrInvalidProfileID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdateRoleNoRows(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET "role"=$1,"updated_at"=$2 WHERE id = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), id, "user")
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
}

func TestMapRepositoryError(t *testing.T) {
	assert.NoError(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), profileerrors.ErrProfileNotFound)
	assert.ErrorIs(t,
		mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_profiles_national_id"}),
		profileerrors.ErrNationalIDAlreadyExists,
	)
	assert.ErrorIs(t,
		mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_profiles_email"}),
		profileerrors.ErrEmailAlreadyExists,
	)

	other := errors.New("boom")
	assert.Equal(t, other, mapRepositoryError(other))
}

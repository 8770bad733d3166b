package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Ann", "ann@x.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u1", now))

	repo := NewPostgresRepository(db)
	user, err := repo.Create(context.Background(), &models.User{
		Name: "Ann", Email: "ann@x.com", PasswordHash: "hashed",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	repo := NewPostgresRepository(db)
	_, err := repo.Create(context.Background(), &models.User{
		Name: "Ann", Email: "ann@x.com", PasswordHash: "hashed",
	})

	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, created_at FROM users")).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")

	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, created_at FROM users")).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("u1", "Ann", "ann@x.com", "hashed", now))

	repo := NewPostgresRepository(db)
	user, err := repo.GetByEmail(context.Background(), "ann@x.com")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hashed", user.PasswordHash)
}

func TestGetByIDAndRefreshToken_EnforcesMembership(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN refresh_tokens rt ON rt.user_id = u.id")).
		WithArgs("u1", "tok-abc").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.GetByIDAndRefreshToken(context.Background(), "u1", "tok-abc")

	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByIDAndRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN refresh_tokens rt ON rt.user_id = u.id")).
		WithArgs("u1", "tok-abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("u1", "Ann", "ann@x.com", "hashed", now))

	repo := NewPostgresRepository(db)
	user, err := repo.GetByIDAndRefreshToken(context.Background(), "u1", "tok-abc")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAddRefreshToken_IdempotentInsert(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	expiresAt := time.Now().Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, token) DO NOTHING")).
		WithArgs("u1", "tok-abc", expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 0)) // duplicate insert affects no rows

	repo := NewPostgresRepository(db)
	err := repo.AddRefreshToken(context.Background(), "u1", "tok-abc", expiresAt)

	assert.NoError(t, err)
}

func TestRemoveRefreshToken_AbsentTokenIsNoop(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WithArgs("u1", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err := repo.RemoveRefreshToken(context.Background(), "u1", "gone")

	assert.NoError(t, err)
}

func TestRemoveRefreshToken_DBError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresRepository(db)
	err := repo.RemoveRefreshToken(context.Background(), "u1", "tok")

	assert.Error(t, err)
}

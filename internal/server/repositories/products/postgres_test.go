package products

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("Widget", 9.99, "a widget").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	repo := NewPostgresRepository(db)
	p, err := repo.Create(context.Background(), &models.Product{
		Name: "Widget", Price: 9.99, Description: "a widget",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestList_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, description, created_at FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description", "created_at"}).
			AddRow(int64(1), "Widget", 9.99, "a widget", now).
			AddRow(int64(2), "Gadget", 19.99, "a gadget", now))

	repo := NewPostgresRepository(db)
	list, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Gadget", list[1].Name)
}

func TestList_Empty(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, description, created_at FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description", "created_at"}))

	repo := NewPostgresRepository(db)
	list, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, description, created_at FROM products")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET")).
		WithArgs(int64(42), "Widget", 9.99, "a widget").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.Update(context.Background(), &models.Product{
		ID: 42, Name: "Widget", Price: 9.99, Description: "a widget",
	})

	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET")).
		WithArgs(int64(1), "Widget", 12.50, "a widget").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	repo := NewPostgresRepository(db)
	p, err := repo.Update(context.Background(), &models.Product{
		ID: 1, Name: "Widget", Price: 12.50, Description: "a widget",
	})

	require.NoError(t, err)
	assert.Equal(t, 12.50, p.Price)
}

func TestDelete_AbsentRowIsNoop(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err := repo.Delete(context.Background(), 42)

	assert.NoError(t, err)
}

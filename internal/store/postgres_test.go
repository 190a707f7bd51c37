package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/petshop/internal/model"
)

// newMockStore binds the store to sqlmock with postgres placeholder rebinding.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return New(sqlx.NewDb(raw, "postgres")), mock
}

func TestPostgresPlaceholders(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO items (name, mutation, price, category) VALUES ($1, $2, $3, $4) RETURNING id`)).
		WithArgs("Rex", "Shiny", int64(150), "fish").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := s.InsertItem(ctx, model.NewItem{Name: "Rex", Mutation: "Shiny", Price: 150, Category: model.CategoryFish})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, username, first_name, last_name) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`)).
		WithArgs(int64(42), "alice", "Alice", nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	alice, first := "alice", "Alice"
	require.NoError(t, s.UpsertUser(ctx, model.User{ID: 42, Username: &alice, FirstName: &first}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetItemMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, mutation, price, category, created_at FROM items WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "mutation", "price", "category", "created_at"}))

	item, err := s.GetItem(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByCategory(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, mutation, price, category, created_at FROM items WHERE category = $1 ORDER BY name, id`)).
		WithArgs("brainrot").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "mutation", "price", "category", "created_at"}).
			AddRow(int64(1), "Bombardiro", "Gold", int64(300), "brainrot", now).
			AddRow(int64(2), "Tung", "Rainbow", int64(500), "brainrot", now))

	items, err := s.ListItemsByCategory(context.Background(), model.CategoryBrainrot)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bombardiro", items[0].Name)
	assert.Equal(t, model.CategoryBrainrot, items[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteReportsRowsAffected(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM items WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := s.DeleteItem(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCounts(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM items`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	items, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, items)

	users, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

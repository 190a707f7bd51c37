package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/petshop/core/telegram/format"
	"github.com/m3rciful/petshop/internal/model"
)

func TestInsertThenGet(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	cases := []model.NewItem{
		{Name: "Rex", Mutation: "Shiny", Price: 150, Category: model.CategoryFish},
		{Name: "Тралалело", Mutation: "Golden", Price: 0, Category: model.CategoryBrainrot},
		{Name: "<b>Nemo</b>", Mutation: "Rainbow & Co", Price: 99999, Category: model.CategoryFish},
	}
	seen := map[int64]bool{}
	for _, in := range cases {
		id, err := s.InsertItem(ctx, in)
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true

		got, err := s.GetItem(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Mutation, got.Mutation)
		assert.Equal(t, in.Price, got.Price)
		assert.Equal(t, in.Category, got.Category)
		assert.False(t, got.CreatedAt.IsZero())
	}
}

func TestDeleteItem(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	keep, err := s.InsertItem(ctx, model.NewItem{Name: "A", Mutation: "m", Price: 1, Category: model.CategoryFish})
	require.NoError(t, err)
	gone, err := s.InsertItem(ctx, model.NewItem{Name: "B", Mutation: "m", Price: 2, Category: model.CategoryFish})
	require.NoError(t, err)

	ok, err := s.DeleteItem(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok)
	n, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err = s.DeleteItem(ctx, gone)
	require.NoError(t, err)
	assert.True(t, ok)

	item, err := s.GetItem(ctx, gone)
	require.NoError(t, err)
	assert.Nil(t, item)
	item, err = s.GetItem(ctx, keep)
	require.NoError(t, err)
	assert.NotNil(t, item)

	ok, err = s.DeleteItem(ctx, gone)
	require.NoError(t, err)
	assert.False(t, ok)

	// A later insert never reuses the deleted id.
	fresh, err := s.InsertItem(ctx, model.NewItem{Name: "C", Mutation: "m", Price: 3, Category: model.CategoryFish})
	require.NoError(t, err)
	assert.Greater(t, fresh, gone)
}

func TestListItemsByCategory(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	for _, it := range []model.NewItem{
		{Name: "Zebra", Mutation: "m", Price: 5, Category: model.CategoryFish},
		{Name: "Tung", Mutation: "m", Price: 7, Category: model.CategoryBrainrot},
		{Name: "Angler", Mutation: "m", Price: 3, Category: model.CategoryFish},
		{Name: "Moray", Mutation: "m", Price: 4, Category: model.CategoryFish},
	} {
		_, err := s.InsertItem(ctx, it)
		require.NoError(t, err)
	}

	fish, err := s.ListItemsByCategory(ctx, model.CategoryFish)
	require.NoError(t, err)
	var names []string
	for _, it := range fish {
		assert.Equal(t, model.CategoryFish, it.Category)
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Angler", "Moray", "Zebra"}, names)

	all, err := s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Tung", all[0].Name)

	empty, err := NewTestStore(t).ListItemsByCategory(ctx, model.CategoryBrainrot)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpsertUserFirstWriteWins(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	first := model.User{ID: 42, Username: format.StringPtr("alice"), FirstName: format.StringPtr("Alice"), LastName: format.StringPtr("A")}
	second := model.User{ID: 42, Username: format.StringPtr("bob"), FirstName: format.StringPtr("Bob")}
	require.NoError(t, s.UpsertUser(ctx, first))
	require.NoError(t, s.UpsertUser(ctx, second))

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetUser(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", *got.Username)
	assert.Equal(t, "Alice", *got.FirstName)
	assert.Equal(t, "A", *got.LastName)

	missing, err := s.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertUserNullableFields(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, model.User{ID: 5, FirstName: format.StringPtr("Ann")}))
	got, err := s.GetUser(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got.Username)
	assert.Nil(t, got.LastName)
}

func TestCreatePurchase(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	itemID, err := s.InsertItem(ctx, model.NewItem{Name: "Rex", Mutation: "Shiny", Price: 150, Category: model.CategoryFish})
	require.NoError(t, err)

	id, err := s.CreatePurchase(ctx, 42, itemID)
	require.NoError(t, err)

	p, err := s.GetPurchase(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, itemID, p.ItemID)
	assert.Equal(t, model.PurchasePending, p.Status)

	list, err := s.ListPurchasesByUser(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Deleting the item keeps the purchase row.
	_, err = s.DeleteItem(ctx, itemID)
	require.NoError(t, err)
	p, err = s.GetPurchase(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestCatalogSeeder(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()
	seeder := CatalogSeeder{Items: []model.NewItem{
		{Name: "Rex", Mutation: "Shiny", Price: 150, Category: model.CategoryFish},
		{Name: "Tung", Mutation: "Gold", Price: 300, Category: model.CategoryBrainrot},
	}}

	require.NoError(t, seeder.Seed(ctx, s.DB()))
	require.NoError(t, seeder.Seed(ctx, s.DB()))

	n, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

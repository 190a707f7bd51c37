package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/internal/model"
)

const itemColumns = `id, name, mutation, price, category, created_at`

// InsertItem adds an item and returns its new id. Fields are stored as given.
func (s *Store) InsertItem(ctx context.Context, item model.NewItem) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		s.q(`INSERT INTO items (name, mutation, price, category) VALUES (?, ?, ?, ?) RETURNING id`),
		item.Name, item.Mutation, item.Price, item.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	logger.Catalog.LogAttrs(ctx, slog.LevelInfo, "item added",
		slog.String("event", "catalog.insert"),
		slog.Int64("item_id", id),
		slog.String("category", string(item.Category)),
	)
	return id, nil
}

// DeleteItem removes the item and reports whether a row existed.
// Purchase requests referencing the item are kept.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item %d: rows affected: %w", id, err)
	}
	logger.Catalog.LogAttrs(ctx, slog.LevelInfo, "item deleted",
		slog.String("event", "catalog.delete"),
		slog.Int64("item_id", id),
		slog.Bool("found", n > 0),
	)
	return n > 0, nil
}

// GetItem returns the item or nil when it does not exist.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	ok, err := s.getOne(ctx, &item, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// ListItemsByCategory returns the items of one category ordered by name.
func (s *Store) ListItemsByCategory(ctx context.Context, category model.Category) ([]model.Item, error) {
	items := []model.Item{}
	err := s.db.SelectContext(ctx, &items,
		s.q(`SELECT `+itemColumns+` FROM items WHERE category = ? ORDER BY name, id`), category)
	if err != nil {
		return nil, fmt.Errorf("list items in %s: %w", category, err)
	}
	return items, nil
}

// ListItems returns the whole catalog ordered by category, then name.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	err := s.db.SelectContext(ctx, &items,
		s.q(`SELECT `+itemColumns+` FROM items ORDER BY category, name, id`))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// CountItems returns the catalog size.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(*) FROM items`)); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/internal/model"
)

// CatalogSeeder fills an empty catalog with Items. A catalog that already holds
// any item is left untouched.
type CatalogSeeder struct {
	Items []model.NewItem
}

// Seed implements bootstrap.Seeder.
func (cs CatalogSeeder) Seed(ctx context.Context, db *sqlx.DB) error {
	if len(cs.Items) == 0 {
		return nil
	}
	s := New(db)
	n, err := s.CountItems(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Catalog.LogAttrs(ctx, slog.LevelDebug, "seed skipped",
			slog.String("event", "catalog.seed"),
			slog.Int("count", n),
		)
		return nil
	}
	for _, item := range cs.Items {
		if _, err := s.InsertItem(ctx, item); err != nil {
			return fmt.Errorf("seed %q: %w", item.Name, err)
		}
	}
	logger.Catalog.LogAttrs(ctx, slog.LevelInfo, "catalog seeded",
		slog.String("event", "catalog.seed"),
		slog.Int("count", len(cs.Items)),
	)
	return nil
}

// Command petshop runs the Pet Shop Telegram storefront.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/m3rciful/petshop/core/bootstrap"
	"github.com/m3rciful/petshop/core/cmd"
	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/core/telegram/state"
	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/bot"
	"github.com/m3rciful/petshop/internal/config"
	"github.com/m3rciful/petshop/internal/menu"
	"github.com/m3rciful/petshop/internal/store"
	"github.com/m3rciful/petshop/internal/wizard"
)

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar: "CONFIG_PATH",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: build,
	})
	if err != nil {
		log.Printf("petshop: %v", err)
		os.Exit(1)
	}
}

func build(ctx context.Context, carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:         &cfg.Config,
		Database:       cfg.Database,
		Migrations:     store.Migrations,
		MigrationsRoot: store.MigrationsRoot,
		Seeders:        []bootstrap.Seeder{store.CatalogSeeder{Items: cfg.Shop.Seed}},
	})
	if err != nil {
		return nil, err
	}

	sessions, closeSessions, err := state.Open[wizard.Session](ctx, cfg.State)
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}

	db := store.New(res.DB)
	admins := access.FromConfig(cfg.Telegram.AdminIDs)
	logStartup(ctx, db, admins)
	notifier := bot.NewTeleNotifier()
	wiz := wizard.New(sessions, db)

	graph := menu.New(menu.Deps{
		Catalog:   db,
		Purchases: db,
		Notifier:  notifier,
		Wizard:    wiz,
		Admins:    admins,
	})
	dispatcher := bot.NewDispatcher(bot.DispatcherDeps{
		Menu:   graph,
		Users:  db,
		Wizard: wiz,
		Admins: admins,
	})

	return bot.NewApp(bot.Options{
		Config:     &cfg.Config,
		Dispatcher: dispatcher,
		Notifier:   notifier,
		Admins:     admins,
		Close: func() error {
			return errors.Join(closeSessions(), res.DB.Close())
		},
	})
}

func logStartup(ctx context.Context, db *store.Store, admins access.Admins) {
	items, err := db.CountItems(ctx)
	if err != nil {
		logger.Catalog.LogAttrs(ctx, slog.LevelWarn, "catalog.count_failed", slog.String("err", err.Error()))
		return
	}
	users, err := db.CountUsers(ctx)
	if err != nil {
		logger.Catalog.LogAttrs(ctx, slog.LevelWarn, "catalog.count_failed", slog.String("err", err.Error()))
		return
	}
	logger.Catalog.LogAttrs(ctx, slog.LevelInfo, "catalog.loaded",
		slog.Int("items", items),
		slog.Int("users", users),
		slog.Int("admins", admins.Len()),
	)
}

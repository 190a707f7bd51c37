// Package menu renders navigation routes into screens.
package menu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

// Catalog is the item storage the menu reads and deletes from.
type Catalog interface {
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	ListItemsByCategory(ctx context.Context, category model.Category) ([]model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// Purchases records purchase requests.
type Purchases interface {
	CreatePurchase(ctx context.Context, userID, itemID int64) (int64, error)
}

// Notifier delivers a screen to a chat outside the current conversation.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, s screen.Screen) error
}

// WizardStarter opens and abandons item entry sessions.
type WizardStarter interface {
	Begin(ctx context.Context, userID int64) (screen.Screen, error)
	Cancel(ctx context.Context, userID int64) error
}

// Deps are the collaborators of a Graph.
type Deps struct {
	Catalog   Catalog
	Purchases Purchases
	Notifier  Notifier
	Wizard    WizardStarter
	Admins    access.Admins
}

// Actor is the user a screen is rendered for.
type Actor struct {
	ID        int64
	Username  string
	FirstName string
}

// Graph maps routes to screens.
type Graph struct {
	deps Deps
}

// New builds a Graph.
func New(deps Deps) *Graph {
	return &Graph{deps: deps}
}

// IsAdmin reports whether userID may open administrator routes.
func (g *Graph) IsAdmin(userID int64) bool {
	return g.deps.Admins.Contains(userID)
}

// Render produces the screen for r as seen by actor. Administrator routes opened by
// anyone else render an access denied screen and change nothing.
func (g *Graph) Render(ctx context.Context, actor Actor, r route.Route) (screen.Screen, error) {
	if route.RequiresAdmin(r) && !g.IsAdmin(actor.ID) {
		logger.Menu.LogAttrs(ctx, slog.LevelWarn, "admin route denied",
			slog.String("event", "menu.denied"),
			slog.String("route", route.Name(r)),
			slog.Int64("user_id", actor.ID),
		)
		return accessDenied(), nil
	}

	switch r := r.(type) {
	case route.Main:
		return mainMenu(actor, g.IsAdmin(actor.ID)), nil
	case route.Shop:
		return shopMenu(), nil
	case route.About:
		return about(), nil
	case route.Category:
		return g.category(ctx, r.Category)
	case route.Item:
		return g.item(ctx, actor, r.ID)
	case route.Buy:
		return g.buy(ctx, actor, r.ID)
	case route.Admin:
		return adminPanel(), nil
	case route.AdminAdd:
		return g.deps.Wizard.Begin(ctx, actor.ID)
	case route.AdminCancel:
		if err := g.deps.Wizard.Cancel(ctx, actor.ID); err != nil {
			return screen.Screen{}, err
		}
		return adminPanel(), nil
	case route.AdminDeleteMenu:
		return g.deleteMenu(ctx)
	case route.AdminList:
		return g.list(ctx)
	case route.ConfirmDelete:
		return g.confirmDelete(ctx, r.ID)
	case route.Delete:
		return g.delete(ctx, r.ID)
	default:
		return screen.Screen{}, fmt.Errorf("menu: unhandled route %T", r)
	}
}

func (g *Graph) category(ctx context.Context, c model.Category) (screen.Screen, error) {
	items, err := g.deps.Catalog.ListItemsByCategory(ctx, c)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu category %s: %w", c, err)
	}
	return categoryScreen(c, items), nil
}

func (g *Graph) item(ctx context.Context, actor Actor, id int64) (screen.Screen, error) {
	item, err := g.deps.Catalog.GetItem(ctx, id)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu item %d: %w", id, err)
	}
	if item == nil {
		return notFound(), nil
	}
	return itemScreen(*item, g.IsAdmin(actor.ID)), nil
}

// buy files the purchase request and notifies every administrator in turn. A failed
// delivery is logged and does not affect the buyer's screen.
func (g *Graph) buy(ctx context.Context, actor Actor, id int64) (screen.Screen, error) {
	item, err := g.deps.Catalog.GetItem(ctx, id)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu buy %d: %w", id, err)
	}
	if item == nil {
		return notFound(), nil
	}
	purchaseID, err := g.deps.Purchases.CreatePurchase(ctx, actor.ID, item.ID)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu buy %d: %w", id, err)
	}
	logger.Menu.LogAttrs(ctx, slog.LevelInfo, "purchase requested",
		slog.String("event", "purchase.create"),
		slog.Int64("purchase_id", purchaseID),
		slog.Int64("item_id", item.ID),
		slog.Int64("user_id", actor.ID),
	)

	note := adminNotification(purchaseID, *item, actor)
	delivered := 0
	for _, adminID := range g.deps.Admins.IDs() {
		if err := g.deps.Notifier.Notify(ctx, adminID, note); err != nil {
			logger.Notify.LogAttrs(ctx, slog.LevelError, "admin notification failed",
				slog.String("event", "notify.fail"),
				slog.Int64("admin_id", adminID),
				slog.Int64("purchase_id", purchaseID),
				slog.String("err", err.Error()),
			)
			continue
		}
		delivered++
	}
	logger.Notify.LogAttrs(ctx, slog.LevelDebug, "admin notifications sent",
		slog.String("event", "notify.done"),
		slog.Int64("purchase_id", purchaseID),
		slog.Int("delivered", delivered),
		slog.Int("admins", g.deps.Admins.Len()),
	)
	return purchaseSent(*item, g.deps.Admins.Primary()), nil
}

func (g *Graph) deleteMenu(ctx context.Context) (screen.Screen, error) {
	items, err := g.deps.Catalog.ListItems(ctx)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu delete list: %w", err)
	}
	return deleteMenuScreen(items), nil
}

func (g *Graph) list(ctx context.Context) (screen.Screen, error) {
	items, err := g.deps.Catalog.ListItems(ctx)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu list: %w", err)
	}
	return listScreen(items), nil
}

func (g *Graph) confirmDelete(ctx context.Context, id int64) (screen.Screen, error) {
	item, err := g.deps.Catalog.GetItem(ctx, id)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu confirm delete %d: %w", id, err)
	}
	if item == nil {
		return notFound(), nil
	}
	return confirmDeleteScreen(*item), nil
}

func (g *Graph) delete(ctx context.Context, id int64) (screen.Screen, error) {
	ok, err := g.deps.Catalog.DeleteItem(ctx, id)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("menu delete %d: %w", id, err)
	}
	return deleteResult(ok), nil
}

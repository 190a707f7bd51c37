// Package bot connects the storefront to Telegram updates.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/petshop/core/telegram/format"
	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/menu"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

const (
	textUseButtons = "ℹ Используйте кнопки для навигации"
	textCancelled  = "❌ Действие отменено"
	labelMain      = "🏠 Главное меню"
)

// Renderer turns routes into screens.
type Renderer interface {
	Render(ctx context.Context, actor menu.Actor, r route.Route) (screen.Screen, error)
}

// Users records everyone who opened the bot.
type Users interface {
	UpsertUser(ctx context.Context, u model.User) error
}

// Wizard is the item entry conversation as seen by the dispatcher.
type Wizard interface {
	Active(ctx context.Context, userID int64) (bool, error)
	Continue(ctx context.Context, userID int64, text string) (screen.Screen, error)
	Cancel(ctx context.Context, userID int64) error
}

// DispatcherDeps are the collaborators of a Dispatcher.
type DispatcherDeps struct {
	Menu   Renderer
	Users  Users
	Wizard Wizard
	Admins access.Admins
}

// Dispatcher maps incoming events to screens without knowing about the transport.
type Dispatcher struct {
	menu   Renderer
	users  Users
	wizard Wizard
	admins access.Admins
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		menu:   deps.Menu,
		users:  deps.Users,
		wizard: deps.Wizard,
		admins: deps.Admins,
	}
}

// Start records the user and renders the main screen.
func (d *Dispatcher) Start(ctx context.Context, u model.User) (screen.Screen, error) {
	if err := d.users.UpsertUser(ctx, u); err != nil {
		return screen.Screen{}, fmt.Errorf("start: %w", err)
	}
	return d.menu.Render(ctx, actorOf(u), route.Main{})
}

// Callback renders the route a button carried. Tokens outside the route set
// return an error wrapping route.ErrUnknown. Returning to the main menu records
// the user the same way Start does.
func (d *Dispatcher) Callback(ctx context.Context, u model.User, token string) (screen.Screen, error) {
	r, err := route.Parse(token)
	if err != nil {
		return screen.Screen{}, err
	}
	if _, ok := r.(route.Main); ok {
		if err := d.users.UpsertUser(ctx, u); err != nil {
			return screen.Screen{}, fmt.Errorf("main: %w", err)
		}
	}
	return d.menu.Render(ctx, actorOf(u), r)
}

// Text handles a plain message. Commands are never wizard input; anything else goes
// to the wizard when the sender has one running.
func (d *Dispatcher) Text(ctx context.Context, actor menu.Actor, text string) (screen.Screen, error) {
	if !strings.HasPrefix(strings.TrimSpace(text), "/") && d.admins.Contains(actor.ID) {
		active, err := d.wizard.Active(ctx, actor.ID)
		if err != nil {
			return screen.Screen{}, err
		}
		if active {
			return d.wizard.Continue(ctx, actor.ID, text)
		}
	}
	return screen.New(textUseButtons), nil
}

// Cancel abandons whatever conversation the actor has running.
func (d *Dispatcher) Cancel(ctx context.Context, actor menu.Actor) (screen.Screen, error) {
	if err := d.wizard.Cancel(ctx, actor.ID); err != nil {
		return screen.Screen{}, err
	}
	return screen.New(textCancelled, screen.Row(screen.Nav(labelMain, route.Main{}))), nil
}

// Admin renders the administrator panel, or access denied for everyone else.
func (d *Dispatcher) Admin(ctx context.Context, actor menu.Actor) (screen.Screen, error) {
	return d.menu.Render(ctx, actor, route.Admin{})
}

func actorOf(u model.User) menu.Actor {
	return menu.Actor{
		ID:        u.ID,
		Username:  format.DerefString(u.Username, ""),
		FirstName: format.DerefString(u.FirstName, ""),
	}
}

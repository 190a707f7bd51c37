package bot

import (
	"context"
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/petshop/core/config"
	"github.com/m3rciful/petshop/core/logger"
	tg "github.com/m3rciful/petshop/core/telegram"
	"github.com/m3rciful/petshop/core/telegram/callbacks"
	"github.com/m3rciful/petshop/core/telegram/commands"
	"github.com/m3rciful/petshop/core/telegram/format"
	tghelpers "github.com/m3rciful/petshop/core/telegram/helpers"
	"github.com/m3rciful/petshop/core/telegram/middleware"
	"github.com/m3rciful/petshop/core/telegram/router"
	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/menu"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

const textFailure = "⚠ Произошла ошибка"

// Options wires an App.
type Options struct {
	Config     *coreconfig.Config
	Dispatcher *Dispatcher
	Notifier   *TeleNotifier
	Admins     access.Admins
	// Close releases resources when the bot stops.
	Close func() error
}

// App is the Telegram front of the shop.
type App struct {
	opts Options
	reg  *tg.Registry
}

// NewApp registers the shop's commands and callbacks.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil || opts.Dispatcher == nil {
		return nil, errors.New("bot: config and dispatcher are required")
	}
	if opts.Notifier == nil {
		opts.Notifier = NewTeleNotifier()
	}
	a := &App{opts: opts, reg: tg.NewRegistry()}

	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Главное меню",
	})
	a.reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Отменить текущее действие",
	})
	a.reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdmin,
		Description: "Админ-панель",
		AdminOnly:   true,
		Hidden:      true,
	})
	for _, key := range route.Keys() {
		if err := a.reg.RegisterCallback(key, a.handleCallback); err != nil {
			return nil, err
		}
	}
	a.reg.SetTextFallback(a.handleText)
	return a, nil
}

// Registry exposes the registered handlers.
func (a *App) Registry() *tg.Registry {
	return a.reg
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	mws := tg.DefaultMiddlewares(a.opts.Config, tg.ChainOptions{
		Errors: middleware.ErrorOptions{OnCallbackError: replaceWithFailure},
	})

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		IsAdmin: a.opts.Admins.Contains,
		// Non-administrators get the panel's access denied screen.
		OnAdminReject: a.handleAdmin,
	})
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.reg, router.TextOptions{
		UnknownDocument: a.handleText,
	})...)

	return tg.RunOptions{
		Config:      a.opts.Config,
		Registry:    a.reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.opts.Notifier.Bind(rt.Bot)
			logger.TG.LogAttrs(ctx, slog.LevelInfo, "shop ready",
				slog.String("event", "shop.ready"),
				slog.Any("admins", a.opts.Admins.IDs()),
			)
			return nil
		},
		OnStop: func(context.Context, tg.Runtime) error {
			if a.opts.Close != nil {
				return a.opts.Close()
			}
			return nil
		},
	}, nil
}

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s, err := a.opts.Dispatcher.Start(ctx, userOf(c.Sender()))
	if err != nil {
		return err
	}
	return send(c, s)
}

func (a *App) handleCancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s, err := a.opts.Dispatcher.Cancel(ctx, actorOf(userOf(c.Sender())))
	if err != nil {
		return err
	}
	return send(c, s)
}

func (a *App) handleAdmin(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s, err := a.opts.Dispatcher.Admin(ctx, actorOf(userOf(c.Sender())))
	if err != nil {
		return err
	}
	return send(c, s)
}

func (a *App) handleText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	s, err := a.opts.Dispatcher.Text(ctx, actorOf(userOf(c.Sender())), c.Text())
	if err != nil {
		return err
	}
	return send(c, s)
}

func (a *App) handleCallback(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	token := callbacks.CallbackToken(c)
	s, err := a.opts.Dispatcher.Callback(ctx, userOf(c.Sender()), token)
	if errors.Is(err, route.ErrUnknown) {
		logger.LogEvent(ctx, logger.Menu, slog.LevelDebug, "route.unknown",
			slog.String("token", logger.Sanitize(token)),
		)
		return nil
	}
	if err != nil {
		return err
	}
	return tghelpers.EditHTML(c, s.Text, s.Markup())
}

func send(c tele.Context, s screen.Screen) error {
	return tghelpers.SendHTML(c, s.Text, s.Markup())
}

func replaceWithFailure(c tele.Context, _ error) error {
	return tghelpers.EditHTML(c, textFailure, nil)
}

func userOf(u *tele.User) model.User {
	if u == nil {
		return model.User{}
	}
	return model.User{
		ID:        u.ID,
		Username:  format.StringPtr(u.Username),
		FirstName: format.StringPtr(u.FirstName),
		LastName:  format.StringPtr(u.LastName),
	}
}

var _ menu.Notifier = (*TeleNotifier)(nil)

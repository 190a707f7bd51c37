package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/petshop/core/config"
	tg "github.com/m3rciful/petshop/core/telegram"
	"github.com/m3rciful/petshop/core/telegram/middleware"
	"github.com/m3rciful/petshop/core/telegram/router"
	"github.com/m3rciful/petshop/core/telegram/teletest"
	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

type appFixture struct {
	*dispatcherFixture
	app *App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	f := newDispatcherFixture()
	app, err := NewApp(Options{
		Config:     &coreconfig.Config{},
		Dispatcher: f.d,
		Admins:     access.NewAdmins(adminID),
	})
	require.NoError(t, err)
	return &appFixture{dispatcherFixture: f, app: app}
}

func TestNewAppRegistersHandlers(t *testing.T) {
	f := newAppFixture(t)
	reg := f.app.Registry()

	visible := reg.ListCommands(true)
	names := make([]string, 0, len(visible))
	for _, c := range visible {
		names = append(names, c.Text)
	}
	assert.Equal(t, []string{"cancel", "start"}, names)
	assert.Contains(t, reg.Commands(), "/admin")

	for _, key := range route.Keys() {
		_, ok := reg.GetCallback(key)
		assert.True(t, ok, key)
	}
}

func TestNewAppRequiresDispatcher(t *testing.T) {
	_, err := NewApp(Options{Config: &coreconfig.Config{}})
	assert.Error(t, err)
}

func TestStartCommandSendsMain(t *testing.T) {
	f := newAppFixture(t)
	cmd := f.app.Registry().Commands()["/start"]

	c := teletest.NewMessage(1, teletest.User(userID, "ann", "Ann"), "/start")
	require.NoError(t, cmd.Handler(c))

	out := c.Last()
	assert.False(t, out.Edit)
	assert.Equal(t, "screen:main", out.Text)
	require.NotNil(t, out.Opts)
	assert.Equal(t, tele.ModeHTML, out.Opts.ParseMode)
	require.Len(t, f.users.upserted, 1)
	assert.Equal(t, "ann", *f.users.upserted[0].Username)
	assert.Nil(t, f.users.upserted[0].LastName)
}

func TestCallbackEditsMessage(t *testing.T) {
	f := newAppFixture(t)
	handler := router.CallbackRoute(f.app.Registry(), router.CallbackOptions{}).Handler

	c := teletest.NewCallback(1, teletest.User(userID, "ann", "Ann"), "category:fish")
	require.NoError(t, handler(c))

	assert.Len(t, c.Responses, 1)
	out := c.Last()
	assert.True(t, out.Edit)
	assert.Equal(t, "screen:category:fish", out.Text)
	require.NotNil(t, out.Opts.ReplyMarkup)
	assert.Equal(t, "main", out.Opts.ReplyMarkup.InlineKeyboard[0][0].Data)
}

func TestCallbackBadParamIsIgnored(t *testing.T) {
	f := newAppFixture(t)
	handler := router.CallbackRoute(f.app.Registry(), router.CallbackOptions{}).Handler

	c := teletest.NewCallback(1, teletest.User(userID, "ann", "Ann"), "item:zero")
	require.NoError(t, handler(c))
	assert.Empty(t, c.Out)
	assert.Empty(t, f.menu.rendered)
}

func TestTextFallbackReplies(t *testing.T) {
	f := newAppFixture(t)
	routes := router.TextRoutes(f.app.Registry(), router.TextOptions{})

	c := teletest.NewMessage(1, teletest.User(userID, "ann", "Ann"), "hi")
	require.NoError(t, routes[0].Handler(c))
	assert.Equal(t, textUseButtons, c.Last().Text)
}

func TestCallbackFailureReplacesMessage(t *testing.T) {
	mw := middleware.ErrorMiddleware(middleware.ErrorOptions{OnCallbackError: replaceWithFailure})
	h := mw(func(tele.Context) error { return errors.New("db down") })

	c := teletest.NewCallback(1, teletest.User(userID, "ann", "Ann"), "shop")
	require.NoError(t, h(c))
	out := c.Last()
	assert.True(t, out.Edit)
	assert.Equal(t, textFailure, out.Text)
}

func TestRunOptionsBindNotifier(t *testing.T) {
	f := newAppFixture(t)
	opts, err := f.app.TelegramRunOptions()
	require.NoError(t, err)

	assert.NotEmpty(t, opts.Routes)
	names := make([]string, 0, len(opts.Middlewares))
	for _, mw := range opts.Middlewares {
		names = append(names, mw.Name)
	}
	assert.Equal(t, []string{"logger", "metrics", "errors", "recover"}, names)

	require.NoError(t, opts.OnStart(context.Background(), tg.Runtime{Bot: &tele.Bot{}}))
	require.NoError(t, opts.OnStop(context.Background(), tg.Runtime{}))
}

type fakeSender struct {
	to   []tele.Recipient
	text []string
}

func (f *fakeSender) Send(to tele.Recipient, what any, _ ...any) (*tele.Message, error) {
	f.to = append(f.to, to)
	f.text = append(f.text, what.(string))
	return &tele.Message{}, nil
}

func TestTeleNotifier(t *testing.T) {
	n := NewTeleNotifier()
	err := n.Notify(context.Background(), adminID, screen.New("hi"))
	assert.ErrorIs(t, err, ErrNotBound)

	s := &fakeSender{}
	n.Bind(s)
	require.NoError(t, n.Notify(context.Background(), adminID, screen.New("hi")))
	assert.Equal(t, []tele.Recipient{tele.ChatID(adminID)}, s.to)
	assert.Equal(t, []string{"hi"}, s.text)
}

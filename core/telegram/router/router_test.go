package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/petshop/core/telegram"
	"github.com/m3rciful/petshop/core/telegram/commands"
	"github.com/m3rciful/petshop/core/telegram/teletest"
)

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	reg := tg.NewRegistry()
	var seen string
	require.NoError(t, reg.RegisterCallback("item", func(c tele.Context) error {
		seen = c.Callback().Data
		return nil
	}))
	route := CallbackRoute(reg, CallbackOptions{})
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	c := teletest.NewCallback(1, teletest.User(10, "u", "U"), "item:5")
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "item:5", seen)
	assert.Len(t, c.Responses, 1)
}

func TestCallbackRouteUnknownKey(t *testing.T) {
	reg := tg.NewRegistry()
	route := CallbackRoute(reg, CallbackOptions{})

	c := teletest.NewCallback(1, teletest.User(10, "u", "U"), "bogus:1")
	require.NoError(t, route.Handler(c))
	require.Len(t, c.Responses, 1)
	assert.Equal(t, tg.DefaultUnsupportedText, c.Responses[0].Text)
	assert.Empty(t, c.Out)
}

func TestCallbackRoutePropagatesErrors(t *testing.T) {
	reg := tg.NewRegistry()
	require.NoError(t, reg.RegisterCallback("shop", func(tele.Context) error { return errors.New("db down") }))
	route := CallbackRoute(reg, CallbackOptions{})

	err := route.Handler(teletest.NewCallback(1, teletest.User(10, "u", "U"), "shop"))
	assert.EqualError(t, err, "db down")
}

func TestTextRoutes(t *testing.T) {
	reg := tg.NewRegistry()
	var got []string
	reg.RegisterCommand("/cancel", commands.Command{
		Description: "Cancel",
		Aliases:     []string{"stop"},
		Handler:     func(tele.Context) error { got = append(got, "cancel"); return nil },
	})
	reg.SetTextFallback(func(c tele.Context) error { got = append(got, "fallback:"+c.Text()); return nil })

	routes := TextRoutes(reg, TextOptions{})
	require.Len(t, routes, 2)
	text := routes[0].Handler
	user := teletest.User(10, "u", "U")

	require.NoError(t, text(teletest.NewMessage(1, user, "/stop")))
	require.NoError(t, text(teletest.NewMessage(2, user, "Nemo")))
	require.NoError(t, text(teletest.NewMessage(3, user, "/unknown")))
	assert.Equal(t, []string{"cancel", "fallback:Nemo", "fallback:/unknown"}, got)
}

func TestCommandRoutesAdminOnly(t *testing.T) {
	reg := tg.NewRegistry()
	calls := 0
	reg.RegisterCommand("/admin", commands.Command{
		Description: "Admin panel",
		AdminOnly:   true,
		Handler:     func(tele.Context) error { calls++; return nil },
	})
	rejected := 0
	routes := CommandRoutes(reg, CommandRouteOptions{
		IsAdmin:       func(id int64) bool { return id == 1 },
		OnAdminReject: func(tele.Context) error { rejected++; return nil },
	})
	require.Len(t, routes, 1)
	assert.Equal(t, "/admin", routes[0].Endpoint)

	require.NoError(t, routes[0].Handler(teletest.NewMessage(1, teletest.User(1, "a", "A"), "/admin")))
	require.NoError(t, routes[0].Handler(teletest.NewMessage(2, teletest.User(2, "b", "B"), "/admin")))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, rejected)
}

func TestDeriveErrorCode(t *testing.T) {
	assert.Equal(t, "", deriveErrorCode(nil))
	assert.Equal(t, "ERRORSTRING", deriveErrorCode(errors.New("x")))
}

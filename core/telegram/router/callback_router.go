package router

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/petshop/core/telegram"
	"github.com/m3rciful/petshop/core/telegram/callbacks"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	// NotFound is used when the registry has no fallback of its own.
	NotFound tele.HandlerFunc
}

// CallbackRoute dispatches every button press to the registry handler registered for
// its key. Found handlers run after the press is answered, so they only need to edit
// the message; the not-found fallback answers the press itself.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		key, payload := callbacks.ParseCallbackData(cb)
		extras := []slog.Attr{slog.String("cb_key", key)}
		if payload != "" {
			extras = append(extras, slog.String("payload", payload))
		}

		h, ok := reg.GetCallback(key)
		if !ok || h == nil {
			h = reg.CallbackNotFound()
			if h == nil {
				h = opts.NotFound
			}
			if h == nil {
				h = func(c tele.Context) error { return c.Respond() }
			}
			s := newSummary("callback."+key, append(extras, slog.String("reason", "not_found"))...)
			s.outcome = "not_found"
			return s.run(c, func() error { return h(c) })
		}

		// Stop the client spinner before the handler edits the message.
		_ = c.Respond()
		return newSummary("callback."+key, extras...).run(c, func() error { return h(c) })
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}

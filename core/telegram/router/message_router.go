package router

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/petshop/core/telegram"
)

// TextOptions controls fallback behaviour for text and document updates.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownDocument tele.HandlerFunc
}

// TextRoutes handles text and documents that no command endpoint caught. Slash text
// is resolved against registry commands and aliases first; everything else goes to
// the registry text fallback, then opts.UnknownText.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	text := func(c tele.Context) error {
		msg := strings.TrimSpace(c.Text())
		if reg != nil && strings.HasPrefix(msg, "/") {
			if key, cmd, ok := reg.LookupCommand(msg); ok && cmd.Handler != nil {
				return newSummary(key).run(c, func() error { return cmd.Handler(c) })
			}
		}
		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return newSummary("text").run(c, func() error { return fb(c) })
			}
		}
		return fallback(c, "unknown_text", opts.UnknownText)
	}
	document := func(c tele.Context) error {
		return fallback(c, "unexpected_document", opts.UnknownDocument)
	}
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: text},
		{Endpoint: tele.OnDocument, Handler: document},
	}
}

// fallback runs h under name, or only logs a skipped update when h is nil.
func fallback(c tele.Context, name string, h tele.HandlerFunc) error {
	s := newSummary(name)
	if h == nil {
		s.outcome = "skip"
		s.log(c, nil)
		return nil
	}
	return s.run(c, func() error { return h(c) })
}

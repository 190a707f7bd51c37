package middleware

import (
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/petshop/core/telegram/helpers"
)

// seenUpdates remembers the last few update ids so a receipt is logged once
// even when the logger wraps both the global chain and a route.
type seenUpdates struct {
	mu    sync.Mutex
	ids   map[int]struct{}
	order []int
	limit int
}

func newSeenUpdates(limit int) *seenUpdates {
	return &seenUpdates{ids: make(map[int]struct{}, limit), limit: limit}
}

// mark records id and reports whether it was already present.
func (s *seenUpdates) mark(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return true
	}
	if len(s.order) >= s.limit {
		delete(s.ids, s.order[0])
		s.order = s.order[1:]
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return false
}

var received = newSeenUpdates(256)

// LoggerMiddleware stores the update context (rid, update/user/chat ids) for
// downstream handlers and logs one sampled debug receipt per update.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		ctx := tghelpers.NewUpdateContext(c)

		if received.mark(upd.ID) || !logger.ShouldSampleDebug() {
			return next(c)
		}

		attrs := []slog.Attr{slog.String("status", "ok")}
		if chat := c.Chat(); chat != nil {
			attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
		}
		if user != nil && user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if user != nil && user.LanguageCode != "" {
			attrs = append(attrs, slog.String("lang", user.LanguageCode))
		}
		switch {
		case upd.Callback != nil:
			key, payload := callbacks.ParseCallbackData(upd.Callback)
			attrs = append(attrs, slog.String("cb_key", logger.SanitizeLimit(key, 128)))
			if payload != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(payload, 256)))
			}
		case upd.Message != nil:
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
		}
		logger.LogEvent(ctx, nil, slog.LevelDebug, "update.received", attrs...)
		return next(c)
	}
}

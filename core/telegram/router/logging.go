package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/petshop/core/logger"
	tghelpers "github.com/m3rciful/petshop/core/telegram/helpers"
	"github.com/m3rciful/petshop/core/telegram/middleware"
)

// summary is the single handler.handled line every routed update produces.
type summary struct {
	handler string
	start   time.Time
	// outcome overrides the ok/fail derived from the handler error.
	outcome string
	extras  []slog.Attr
}

func newSummary(handler string, extras ...slog.Attr) summary {
	return summary{handler: normalizeHandlerName(handler), start: time.Now(), extras: extras}
}

// run tags the request context with the handler, calls fn, and logs the summary.
func (s summary) run(c tele.Context, fn func() error) error {
	tghelpers.WithHandler(c, s.handler)
	err := fn()
	s.log(c, err)
	return err
}

func (s summary) log(c tele.Context, err error) {
	ctx := tghelpers.WithHandler(c, s.handler)
	msgs, kb := middleware.GetCounters(c)

	outcome := s.outcome
	if outcome == "" {
		outcome = "ok"
		if err != nil {
			outcome = "fail"
		}
	}
	attrs := []slog.Attr{
		slog.String("handler", s.handler),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Int64("duration_ms", logger.Took(s.start).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(logger.RedactToken(err.Error()), 256)),
			slog.String("err_code", deriveErrorCode(err)),
		)
	}
	attrs = append(attrs, s.extras...)
	logger.LogEvent(ctx, logger.TG, slog.LevelInfo, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.ToLower(trimSlash(name))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// deriveErrorCode prefers an explicit Code() anywhere in the chain, then the
// dynamic type name of err.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var c interface{ Code() string }
	if errors.As(err, &c) {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(t.Name())
}

func trimSlash(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "/")
}

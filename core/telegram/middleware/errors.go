package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/petshop/core/logger"
	tghelpers "github.com/m3rciful/petshop/core/telegram/helpers"
)

// ErrorOptions configures ErrorMiddleware.
type ErrorOptions struct {
	// OnCallbackError answers a failed button press; its own error is only logged.
	OnCallbackError func(c tele.Context, err error) error
	// OnMessageError answers a failed command or text message.
	OnMessageError func(c tele.Context, err error) error
}

// ErrorMiddleware is the last stop for handler errors: it logs them with update
// context, lets the user know, and swallows the error so the bot keeps serving.
func ErrorMiddleware(opts ErrorOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			ctx := tghelpers.BuildContext(c)
			kind := "message"
			notify := opts.OnMessageError
			if c.Callback() != nil {
				kind = "callback"
				notify = opts.OnCallbackError
			}
			logger.LogEvent(ctx, logger.TG, slog.LevelError, "handler.error",
				slog.String("kind", kind),
				slog.String("err", logger.SanitizeLimit(logger.RedactToken(err.Error()), 256)),
			)
			if notify != nil {
				if nerr := notify(c, err); nerr != nil {
					logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "handler.error.notify_failed",
						slog.String("err", logger.SanitizeLimit(logger.RedactToken(nerr.Error()), 256)),
					)
				}
			}
			return nil
		}
	}
}

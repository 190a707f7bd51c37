package telegram

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/petshop/core/config"
	"github.com/m3rciful/petshop/core/telegram/middleware"
)

// ChainOptions customises the shared middleware chain.
type ChainOptions struct {
	OnLimited func(tele.Context) error
	Errors    middleware.ErrorOptions
}

// DefaultMiddlewares builds the shared middleware chain for bots, outermost first:
// update context, message counters, rate limit, error reporting, panic recovery.
func DefaultMiddlewares(cfg *coreconfig.Config, opts ChainOptions) []Middleware {
	mws := []Middleware{
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
					Interval:  interval,
					Exclude:   ex,
					OnLimited: opts.OnLimited,
				}),
			})
		}
	}

	return append(mws,
		Middleware{Name: "errors", Use: middleware.ErrorMiddleware(opts.Errors)},
		Middleware{Name: "recover", Use: middleware.RecoverMiddleware},
	)
}

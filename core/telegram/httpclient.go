package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/core/telegram/netutil"
)

// ClientOptions tunes NewHTTPClient. Zero values pick the defaults.
type ClientOptions struct {
	// PollTimeout is added to the request timeout so getUpdates is not cut short.
	PollTimeout time.Duration
	Retries     int
	Backoff     time.Duration
}

const (
	requestTimeout = 30 * time.Second
	defaultRetries = 3
	defaultBackoff = 2 * time.Second
)

var errBodyConsumed = errors.New("telegram: request body cannot be replayed")

// NewHTTPClient returns the client used for Bot API calls. Connection level failures
// are retried with linear backoff; any HTTP response, error statuses included, is final.
func NewHTTPClient(opts ClientOptions) *http.Client {
	if opts.Retries <= 0 {
		opts.Retries = defaultRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Timeout: requestTimeout + opts.PollTimeout,
		Transport: &retryTransport{
			base:       base,
			maxRetries: opts.Retries,
			backoff:    opts.Backoff,
		},
	}
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	method := path.Base(req.URL.Path)

	resp, err := base.RoundTrip(req)
	for attempt := 1; err != nil && attempt <= t.maxRetries && netutil.ShouldRetry(err); attempt++ {
		delay := t.backoff * time.Duration(attempt)
		logger.TG.Debug("telegram request retry",
			slog.String("event", "tg.http.retry"),
			slog.String("method", method),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", delay),
			slog.String("err", logger.RedactToken(err.Error())),
		)
		if werr := sleepCtx(req.Context(), delay); werr != nil {
			return nil, werr
		}
		next, rerr := rewind(req)
		if rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		resp, err = base.RoundTrip(next)
	}
	return resp, err
}

// rewind clones req with a fresh body for another attempt.
func rewind(req *http.Request) (*http.Request, error) {
	next := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return next, nil
	}
	if req.GetBody == nil {
		return nil, errBodyConsumed
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	next.Body = body
	return next, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

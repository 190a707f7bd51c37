package telegram

import (
	"net"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/petshop/core/config"
)

// DefaultPollTimeout applies when the long-poll timeout is not configured.
const DefaultPollTimeout = 10 * time.Second

// AllowedUpdates are the update kinds requested from Telegram; the shop reacts to
// messages and button presses only.
var AllowedUpdates = []string{"message", "callback_query"}

// PollTimeout converts the configured seconds, falling back to DefaultPollTimeout.
func PollTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return DefaultPollTimeout
	}
	return time.Duration(seconds) * time.Second
}

// NewPoller selects the update source from a normalized config.
func NewPoller(cfg *coreconfig.Config) tele.Poller {
	if cfg.Telegram.RunMode == coreconfig.RunModeWebhook {
		return &tele.Webhook{
			Listen:         net.JoinHostPort(cfg.Webhook.Listen, strconv.Itoa(cfg.Webhook.Port)),
			AllowedUpdates: AllowedUpdates,
			Endpoint:       &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}
	return &tele.LongPoller{
		Timeout:        PollTimeout(cfg.Telegram.LongPollTimeoutSeconds),
		AllowedUpdates: AllowedUpdates,
	}
}

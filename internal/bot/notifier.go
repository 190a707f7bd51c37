package bot

import (
	"context"
	"errors"
	"sync"

	tghelpers "github.com/m3rciful/petshop/core/telegram/helpers"
	"github.com/m3rciful/petshop/internal/screen"
)

// ErrNotBound is returned by TeleNotifier before the bot has started.
var ErrNotBound = errors.New("notifier: bot is not running")

// TeleNotifier pushes screens to arbitrary chats through the running bot.
type TeleNotifier struct {
	mu     sync.RWMutex
	sender tghelpers.Sender
}

// NewTeleNotifier returns an unbound notifier.
func NewTeleNotifier() *TeleNotifier {
	return &TeleNotifier{}
}

// Bind attaches the bot once it exists.
func (n *TeleNotifier) Bind(s tghelpers.Sender) {
	n.mu.Lock()
	n.sender = s
	n.mu.Unlock()
}

// Notify implements menu.Notifier.
func (n *TeleNotifier) Notify(_ context.Context, chatID int64, s screen.Screen) error {
	n.mu.RLock()
	sender := n.sender
	n.mu.RUnlock()
	if sender == nil {
		return ErrNotBound
	}
	return tghelpers.SendHTMLTo(sender, chatID, s.Text, s.Markup())
}

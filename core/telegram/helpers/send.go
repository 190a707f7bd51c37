package helpers

import (
	"errors"

	tele "gopkg.in/telebot.v4"
)

func htmlOptions(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	}
}

// SendHTML sends a new HTML formatted message with optional inline markup to the current chat.
func SendHTML(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return c.Send(text, htmlOptions(markup))
}

// EditHTML replaces the message the callback originated from.
// An edit with identical content is reported by Telegram as an error and treated as success.
func EditHTML(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	err := c.Edit(text, htmlOptions(markup))
	if errors.Is(err, tele.ErrSameMessageContent) {
		return nil
	}
	return err
}

// Sender is the part of *tele.Bot used to push messages outside an update.
type Sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// SendHTMLTo delivers an HTML message to an arbitrary chat id.
func SendHTMLTo(b Sender, chatID int64, text string, markup *tele.ReplyMarkup) error {
	_, err := b.Send(tele.ChatID(chatID), text, htmlOptions(markup))
	return err
}

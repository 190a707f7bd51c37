package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Separator splits a callback token into its key and payload ("item:42").
const Separator = ":"

// ParseCallbackData splits callback data into key and payload (may be empty).
// Buttons built with a Telebot unique id report it as the key and the data as payload.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return SplitToken(cb.Data)
}

// SplitToken splits a raw token once on Separator.
func SplitToken(token string) (string, string) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "\f")
	key, payload, _ := strings.Cut(token, Separator)
	return strings.TrimSpace(key), payload
}

// CallbackKey returns the key of the current callback.
func CallbackKey(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// CallbackPayload returns the payload after the separator.
func CallbackPayload(c tele.Context) string {
	_, p := ParseCallbackData(c.Callback())
	return p
}

// CallbackToken returns the full callback data as sent by the button.
func CallbackToken(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique + Separator + cb.Data
	}
	return strings.TrimSpace(cb.Data)
}

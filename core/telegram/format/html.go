package format

import (
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the three characters Telegram's HTML parse mode reserves.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// UserURL is the deep link that opens a Telegram user's profile.
func UserURL(userID int64) string {
	return fmt.Sprintf("tg://user?id=%d", userID)
}

// Bold wraps already escaped text in <b>.
func Bold(s string) string {
	return "<b>" + s + "</b>"
}

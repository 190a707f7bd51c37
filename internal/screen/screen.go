// Package screen describes rendered bot output independently of the chat transport.
package screen

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/petshop/core/telegram/keyboard"
	"github.com/m3rciful/petshop/internal/route"
)

// Button either navigates to Route or opens URL.
type Button struct {
	Label string
	Route route.Route
	URL   string
}

// Screen is a message body in Telegram HTML markup plus ordered button rows.
type Screen struct {
	Text string
	Rows [][]Button
}

// Nav builds a button that opens r.
func Nav(label string, r route.Route) Button {
	return Button{Label: label, Route: r}
}

// Link builds a button that opens url.
func Link(label, url string) Button {
	return Button{Label: label, URL: url}
}

// Row groups buttons on one line.
func Row(buttons ...Button) []Button {
	return buttons
}

// New builds a screen from text and rows.
func New(text string, rows ...[]Button) Screen {
	return Screen{Text: text, Rows: rows}
}

// Markup renders the rows as an inline keyboard; nil when there are no buttons.
func (s Screen) Markup() *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(s.Rows))
	for _, row := range s.Rows {
		r := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btn := keyboard.InlineBtn{Text: b.Label, URL: b.URL}
			if b.Route != nil {
				btn.Data = b.Route.Token()
			}
			r = append(r, btn)
		}
		rows = append(rows, r)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// Tokens returns the route tokens of every navigation button, row by row.
func (s Screen) Tokens() []string {
	var out []string
	for _, row := range s.Rows {
		for _, b := range row {
			if b.Route != nil {
				out = append(out, b.Route.Token())
			}
		}
	}
	return out
}

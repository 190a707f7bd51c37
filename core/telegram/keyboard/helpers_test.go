package keyboard

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestInlineButtonsRows(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "Fish", Data: "category:fish"}, {Text: "Brainrot", Data: "category:brainrot"}},
		nil,
		[]InlineBtn{{Text: "Contact", URL: "tg://user?id=1", Data: "ignored"}},
	)
	if markup == nil {
		t.Fatal("expected markup")
	}
	want := [][]tele.InlineButton{
		{{Text: "Fish", Data: "category:fish"}, {Text: "Brainrot", Data: "category:brainrot"}},
		{{Text: "Contact", URL: "tg://user?id=1"}},
	}
	got := markup.InlineKeyboard
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d has %d buttons, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range want[i] {
			g, w := got[i][j], want[i][j]
			if g.Text != w.Text || g.Data != w.Data || g.URL != w.URL {
				t.Errorf("button %d/%d = %+v, want %+v", i, j, g, w)
			}
		}
	}
}

func TestInlineButtonsEmpty(t *testing.T) {
	if InlineButtonsRows() != nil {
		t.Fatal("expected nil markup for no rows")
	}
	if m := InlineButtons([]InlineBtn{{Text: "Back", Data: "main"}}); m == nil || len(m.InlineKeyboard) != 1 {
		t.Fatalf("unexpected markup: %+v", m)
	}
}

package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const countersKey = "petshop.counters"

// counters tallies what a handler sent for the handler summary line.
type counters struct {
	messages int
	keyboard bool
}

// countingContext counts successful sends and edits made through it.
type countingContext struct {
	tele.Context
	n *counters
}

func (c countingContext) count(err error, opts []any) error {
	if err != nil {
		return err
	}
	c.n.messages++
	if hasKeyboard(opts) {
		c.n.keyboard = true
	}
	return nil
}

func hasKeyboard(opts []any) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (c countingContext) Send(what any, opts ...any) error {
	return c.count(c.Context.Send(what, opts...), opts)
}

func (c countingContext) Edit(what any, opts ...any) error {
	return c.count(c.Context.Edit(what, opts...), opts)
}

func (c countingContext) EditOrSend(what any, opts ...any) error {
	return c.count(c.Context.EditOrSend(what, opts...), opts)
}

// MessageMetricsMiddleware counts the messages each update produces.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		n := &counters{}
		c.Set(countersKey, n)
		return next(countingContext{Context: c, n: n})
	}
}

// GetCounters returns how many messages were sent or edited for the current update
// and whether any carried a keyboard.
func GetCounters(c tele.Context) (int, bool) {
	n, _ := c.Get(countersKey).(*counters)
	if n == nil {
		return 0, false
	}
	return n.messages, n.keyboard
}

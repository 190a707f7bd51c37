// Package teletest provides a recording tele.Context for handler tests.
package teletest

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Outgoing is one message sent or edited through a Context.
type Outgoing struct {
	Edit bool
	Text string
	Opts *tele.SendOptions
}

// Context records replies instead of calling the Bot API. Methods not overridden
// here panic, which flags handlers that reach for unexpected API surface.
type Context struct {
	tele.Context

	mu        sync.Mutex
	update    tele.Update
	values    map[string]any
	Out       []Outgoing
	Responses []*tele.CallbackResponse

	// SendErr and EditErr are returned by Send and Edit when set.
	SendErr error
	EditErr error
}

// User builds a sender with the given id and names.
func User(id int64, username, firstName string) *tele.User {
	return &tele.User{ID: id, Username: username, FirstName: firstName}
}

// NewMessage returns a context for a private text message from user.
func NewMessage(updateID int, user *tele.User, text string) *Context {
	return &Context{
		update: tele.Update{
			ID: updateID,
			Message: &tele.Message{
				ID:     updateID,
				Sender: user,
				Chat:   &tele.Chat{ID: user.ID, Type: tele.ChatPrivate},
				Text:   text,
			},
		},
		values: map[string]any{},
	}
}

// NewCallback returns a context for a button press carrying data.
func NewCallback(updateID int, user *tele.User, data string) *Context {
	msg := &tele.Message{
		ID:   updateID,
		Chat: &tele.Chat{ID: user.ID, Type: tele.ChatPrivate},
	}
	return &Context{
		update: tele.Update{
			ID: updateID,
			Callback: &tele.Callback{
				ID:      "cb",
				Sender:  user,
				Message: msg,
				Data:    data,
			},
		},
		values: map[string]any{},
	}
}

func (c *Context) Update() tele.Update { return c.update }

func (c *Context) Message() *tele.Message {
	if c.update.Message != nil {
		return c.update.Message
	}
	if c.update.Callback != nil {
		return c.update.Callback.Message
	}
	return nil
}

func (c *Context) Callback() *tele.Callback { return c.update.Callback }

func (c *Context) Sender() *tele.User {
	switch {
	case c.update.Callback != nil:
		return c.update.Callback.Sender
	case c.update.Message != nil:
		return c.update.Message.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *Context) Text() string {
	if c.update.Message != nil {
		return c.update.Message.Text
	}
	return ""
}

func (c *Context) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = val
}

func (c *Context) record(edit bool, what any, opts []any) {
	out := Outgoing{Edit: edit}
	if s, ok := what.(string); ok {
		out.Text = s
	}
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			out.Opts = so
		}
	}
	c.Out = append(c.Out, out)
}

func (c *Context) Send(what any, opts ...any) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	c.record(false, what, opts)
	return nil
}

func (c *Context) Edit(what any, opts ...any) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.record(true, what, opts)
	return nil
}

func (c *Context) EditOrSend(what any, opts ...any) error {
	if c.update.Callback != nil {
		return c.Edit(what, opts...)
	}
	return c.Send(what, opts...)
}

func (c *Context) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) > 0 {
		c.Responses = append(c.Responses, resp[0])
	} else {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
	}
	return nil
}

// Last returns the most recent outgoing message, or a zero value.
func (c *Context) Last() Outgoing {
	if len(c.Out) == 0 {
		return Outgoing{}
	}
	return c.Out[len(c.Out)-1]
}

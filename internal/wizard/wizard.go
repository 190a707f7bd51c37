// Package wizard implements the administrator's item entry conversation:
// name, mutation, price, then category, after which the item is committed.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/petshop/core/logger"
	"github.com/m3rciful/petshop/core/telegram/state"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/screen"
)

// Step is the field the wizard waits for.
type Step string

const (
	StepName     Step = "name"
	StepMutation Step = "mutation"
	StepPrice    Step = "price"
	StepCategory Step = "category"
)

// Draft holds the fields collected so far.
type Draft struct {
	Name     string         `json:"name,omitempty"`
	Mutation string         `json:"mutation,omitempty"`
	Price    int64          `json:"price,omitempty"`
	Category model.Category `json:"category,omitempty"`
}

// Session is one user's wizard in progress. No stored session means idle.
type Session struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}

// ErrNoSession is returned by Continue when the user has no wizard in progress.
var ErrNoSession = errors.New("wizard: no session in progress")

// ValidationError rejects the input for the current step.
type ValidationError struct {
	Step  Step
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Step, e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Catalog is where committed items go.
type Catalog interface {
	InsertItem(ctx context.Context, item model.NewItem) (int64, error)
}

// Wizard drives item entry sessions kept in a state store.
type Wizard struct {
	sessions state.Store[Session]
	catalog  Catalog
}

// New builds a Wizard.
func New(sessions state.Store[Session], catalog Catalog) *Wizard {
	return &Wizard{sessions: sessions, catalog: catalog}
}

// Begin starts (or restarts) a session for userID and returns the first prompt.
func (w *Wizard) Begin(ctx context.Context, userID int64) (screen.Screen, error) {
	if err := w.sessions.Set(ctx, userID, Session{Step: StepName}); err != nil {
		return screen.Screen{}, fmt.Errorf("wizard begin: %w", err)
	}
	logger.Wizard.LogAttrs(ctx, slog.LevelDebug, "wizard started",
		slog.String("event", "wizard.begin"),
		slog.Int64("user_id", userID),
	)
	return prompt(StepName), nil
}

// Active reports whether userID has a session in progress.
func (w *Wizard) Active(ctx context.Context, userID int64) (bool, error) {
	_, ok, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("wizard lookup: %w", err)
	}
	return ok, nil
}

// Cancel drops the session of userID, if any.
func (w *Wizard) Cancel(ctx context.Context, userID int64) error {
	if err := w.sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("wizard cancel: %w", err)
	}
	return nil
}

// Continue feeds one message into the session. Invalid or blank input re-prompts the
// same step. After a valid category the item is inserted once and the session ends.
// If the insert fails the session is kept so the administrator can retry the category.
func (w *Wizard) Continue(ctx context.Context, userID int64, text string) (screen.Screen, error) {
	sess, ok, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("wizard lookup: %w", err)
	}
	if !ok {
		return screen.Screen{}, ErrNoSession
	}

	next, err := advance(sess, text)
	var verr *ValidationError
	if errors.As(err, &verr) {
		logger.Wizard.LogAttrs(ctx, slog.LevelDebug, "wizard input rejected",
			slog.String("event", "wizard.reject"),
			slog.String("step", string(verr.Step)),
		)
		return retry(verr.Step, verr.Err), nil
	}
	if err != nil {
		return screen.Screen{}, err
	}

	if next.Step != "" {
		if err := w.sessions.Set(ctx, userID, next); err != nil {
			return screen.Screen{}, fmt.Errorf("wizard save: %w", err)
		}
		return prompt(next.Step), nil
	}

	item := model.NewItem{
		Name:     next.Draft.Name,
		Mutation: next.Draft.Mutation,
		Price:    next.Draft.Price,
		Category: next.Draft.Category,
	}
	id, err := w.catalog.InsertItem(ctx, item)
	if err != nil {
		return screen.Screen{}, fmt.Errorf("wizard commit: %w", err)
	}
	if err := w.sessions.Clear(ctx, userID); err != nil {
		return screen.Screen{}, fmt.Errorf("wizard clear: %w", err)
	}
	logger.Wizard.LogAttrs(ctx, slog.LevelInfo, "wizard committed",
		slog.String("event", "wizard.commit"),
		slog.Int64("user_id", userID),
		slog.Int64("item_id", id),
	)
	return summary(id, item), nil
}

var (
	errBlank       = errors.New("blank input")
	errNotInteger  = errors.New("not an integer")
	errBadCategory = errors.New("unknown category")
)

// advance applies text to sess. A returned session with an empty Step means the draft
// is complete.
func advance(sess Session, text string) (Session, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return sess, &ValidationError{Step: sess.Step, Input: text, Err: errBlank}
	}
	switch sess.Step {
	case StepName:
		sess.Draft.Name = text
		sess.Step = StepMutation
	case StepMutation:
		sess.Draft.Mutation = text
		sess.Step = StepPrice
	case StepPrice:
		price, err := ParsePrice(trimmed)
		if err != nil {
			return sess, err
		}
		sess.Draft.Price = price
		sess.Step = StepCategory
	case StepCategory:
		c, err := model.ParseCategory(trimmed)
		if err != nil {
			return sess, &ValidationError{Step: StepCategory, Input: text, Err: errBadCategory}
		}
		sess.Draft.Category = c
		sess.Step = ""
	default:
		return sess, fmt.Errorf("wizard: unknown step %q", sess.Step)
	}
	return sess, nil
}

// ParsePrice accepts any base-10 integer.
func ParsePrice(text string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, &ValidationError{Step: StepPrice, Input: text, Err: errNotInteger}
	}
	return v, nil
}

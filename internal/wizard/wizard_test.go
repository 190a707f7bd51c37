package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/petshop/core/telegram/state"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
)

type fakeCatalog struct {
	items []model.NewItem
	err   error
}

func (f *fakeCatalog) InsertItem(_ context.Context, item model.NewItem) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.items = append(f.items, item)
	return int64(len(f.items)), nil
}

const admin int64 = 42

func newWizard(t *testing.T) (*Wizard, *state.MemoryStore[Session], *fakeCatalog) {
	t.Helper()
	sessions := state.NewMemoryStore[Session]()
	catalog := &fakeCatalog{}
	return New(sessions, catalog), sessions, catalog
}

func feed(t *testing.T, w *Wizard, inputs ...string) string {
	t.Helper()
	var last string
	for _, in := range inputs {
		s, err := w.Continue(context.Background(), admin, in)
		require.NoError(t, err)
		last = s.Text
	}
	return last
}

func TestFullSessionInsertsOnce(t *testing.T) {
	w, sessions, catalog := newWizard(t)
	ctx := context.Background()

	first, err := w.Begin(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, textAskName, first.Text)
	assert.Equal(t, []string{route.AdminCancel{}.Token()}, first.Tokens())

	text := feed(t, w, "Goldie", "Rainbow", "150", "Fish")
	assert.Contains(t, text, "✅ Питомец успешно добавлен!")
	assert.Contains(t, text, "🆔 ID: 1")

	require.Len(t, catalog.items, 1)
	assert.Equal(t, model.NewItem{Name: "Goldie", Mutation: "Rainbow", Price: 150, Category: model.CategoryFish}, catalog.items[0])
	assert.Equal(t, 0, sessions.Len())

	active, err := w.Active(ctx, admin)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestInvalidPriceKeepsStep(t *testing.T) {
	w, sessions, catalog := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	feed(t, w, "Goldie", "Rainbow")
	for _, bad := range []string{"abc", "12.5", "1e3", "   "} {
		s, err := w.Continue(ctx, admin, bad)
		require.NoError(t, err)
		assert.NotEqual(t, textAskCategory, s.Text, bad)

		sess, ok, err := sessions.Get(ctx, admin)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, StepPrice, sess.Step, bad)
	}

	assert.Equal(t, textAskCategory, feed(t, w, "0"))
	assert.Empty(t, catalog.items)
}

func TestNegativePriceAdvances(t *testing.T) {
	w, sessions, _ := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, textAskCategory, feed(t, w, "Rex", "Shiny", "-5"))

	sess, ok, err := sessions.Get(ctx, admin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StepCategory, sess.Step)
	assert.Equal(t, int64(-5), sess.Draft.Price)
}

func TestInvalidCategoryKeepsStep(t *testing.T) {
	w, sessions, catalog := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, textBadCategory, feed(t, w, "Goldie", "Rainbow", "10", "birds"))
	sess, ok, err := sessions.Get(ctx, admin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StepCategory, sess.Step)
	assert.Empty(t, catalog.items)

	feed(t, w, " BRAINROT ")
	require.Len(t, catalog.items, 1)
	assert.Equal(t, model.CategoryBrainrot, catalog.items[0].Category)
}

func TestBlankInputRepromptsSameStep(t *testing.T) {
	w, sessions, _ := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, textAskName, feed(t, w, "  "))
	sess, _, err := sessions.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, StepName, sess.Step)
	assert.Empty(t, sess.Draft.Name)
}

func TestCancelDiscardsDraft(t *testing.T) {
	w, _, catalog := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)
	feed(t, w, "Goldie", "Rainbow", "10")

	require.NoError(t, w.Cancel(ctx, admin))
	active, err := w.Active(ctx, admin)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = w.Continue(ctx, admin, "fish")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, catalog.items)
}

func TestBeginRestartsSession(t *testing.T) {
	w, sessions, _ := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)
	feed(t, w, "Goldie", "Rainbow")

	_, err = w.Begin(ctx, admin)
	require.NoError(t, err)
	sess, ok, err := sessions.Get(ctx, admin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Session{Step: StepName}, sess)
}

func TestInsertFailureKeepsSession(t *testing.T) {
	w, sessions, catalog := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)
	feed(t, w, "Goldie", "Rainbow", "10")

	catalog.err = errors.New("disk full")
	_, err = w.Continue(ctx, admin, "fish")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.err)

	sess, ok, err := sessions.Get(ctx, admin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StepCategory, sess.Step)

	catalog.err = nil
	feed(t, w, "fish")
	assert.Len(t, catalog.items, 1)
}

func TestSessionsArePerUser(t *testing.T) {
	w, _, catalog := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	_, err = w.Continue(ctx, admin+1, "Goldie")
	assert.ErrorIs(t, err, ErrNoSession)
	feed(t, w, "Goldie")
	assert.Empty(t, catalog.items)
}

func TestSummaryEscapesHTML(t *testing.T) {
	w, _, _ := newWizard(t)
	ctx := context.Background()
	_, err := w.Begin(ctx, admin)
	require.NoError(t, err)

	text := feed(t, w, "<b>Nemo</b>", "a&b", "5", "fish")
	assert.Contains(t, text, "&lt;b&gt;Nemo&lt;/b&gt;")
	assert.Contains(t, text, "a&amp;b")
	assert.False(t, strings.Contains(text, "<b>Nemo"))
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{" 250 ", 250, true},
		{"-5", -5, true},
		{"1e3", 0, false},
		{"ten", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if !tc.ok {
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

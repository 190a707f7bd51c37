package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/petshop/internal/access"
	"github.com/m3rciful/petshop/internal/menu"
	"github.com/m3rciful/petshop/internal/model"
	"github.com/m3rciful/petshop/internal/route"
	"github.com/m3rciful/petshop/internal/screen"
)

type fakeRenderer struct {
	rendered []route.Route
	actors   []menu.Actor
}

func (f *fakeRenderer) Render(_ context.Context, actor menu.Actor, r route.Route) (screen.Screen, error) {
	f.rendered = append(f.rendered, r)
	f.actors = append(f.actors, actor)
	return screen.New("screen:"+r.Token(), screen.Row(screen.Nav("back", route.Main{}))), nil
}

type fakeUsers struct {
	upserted []model.User
}

func (f *fakeUsers) UpsertUser(_ context.Context, u model.User) error {
	f.upserted = append(f.upserted, u)
	return nil
}

type fakeWizard struct {
	active    map[int64]bool
	inputs    []string
	cancelled []int64
}

func (f *fakeWizard) Active(_ context.Context, userID int64) (bool, error) {
	return f.active[userID], nil
}

func (f *fakeWizard) Continue(_ context.Context, _ int64, text string) (screen.Screen, error) {
	f.inputs = append(f.inputs, text)
	return screen.New("wizard:" + text), nil
}

func (f *fakeWizard) Cancel(_ context.Context, userID int64) error {
	f.cancelled = append(f.cancelled, userID)
	delete(f.active, userID)
	return nil
}

const (
	adminID int64 = 100
	userID  int64 = 7
)

type dispatcherFixture struct {
	d      *Dispatcher
	menu   *fakeRenderer
	users  *fakeUsers
	wizard *fakeWizard
}

func newDispatcherFixture() *dispatcherFixture {
	f := &dispatcherFixture{
		menu:   &fakeRenderer{},
		users:  &fakeUsers{},
		wizard: &fakeWizard{active: map[int64]bool{}},
	}
	f.d = NewDispatcher(DispatcherDeps{
		Menu:   f.menu,
		Users:  f.users,
		Wizard: f.wizard,
		Admins: access.NewAdmins(adminID),
	})
	return f
}

func TestStartUpsertsAndRendersMain(t *testing.T) {
	f := newDispatcherFixture()
	name := "Ann"
	s, err := f.d.Start(context.Background(), model.User{ID: userID, FirstName: &name})
	require.NoError(t, err)

	assert.Equal(t, "screen:main", s.Text)
	require.Len(t, f.users.upserted, 1)
	assert.Equal(t, userID, f.users.upserted[0].ID)
	assert.Equal(t, menu.Actor{ID: userID, FirstName: "Ann"}, f.menu.actors[0])
}

func TestCallbackParsesToken(t *testing.T) {
	f := newDispatcherFixture()
	s, err := f.d.Callback(context.Background(), model.User{ID: userID}, "item:3")
	require.NoError(t, err)
	assert.Equal(t, "screen:item:3", s.Text)
	assert.Equal(t, []route.Route{route.Item{ID: 3}}, f.menu.rendered)
	assert.Empty(t, f.users.upserted)
}

func TestMainCallbackUpsertsUser(t *testing.T) {
	f := newDispatcherFixture()
	name := "Ann"
	s, err := f.d.Callback(context.Background(), model.User{ID: userID, FirstName: &name}, "main")
	require.NoError(t, err)

	assert.Equal(t, "screen:main", s.Text)
	require.Len(t, f.users.upserted, 1)
	assert.Equal(t, userID, f.users.upserted[0].ID)
	assert.Equal(t, menu.Actor{ID: userID, FirstName: "Ann"}, f.menu.actors[0])
}

func TestCallbackUnknownToken(t *testing.T) {
	f := newDispatcherFixture()
	for _, token := range []string{"bogus", "item:abc", "item:-1", "category:birds"} {
		_, err := f.d.Callback(context.Background(), model.User{ID: userID}, token)
		assert.ErrorIs(t, err, route.ErrUnknown, token)
	}
	assert.Empty(t, f.menu.rendered)
}

func TestTextFeedsActiveWizard(t *testing.T) {
	f := newDispatcherFixture()
	f.wizard.active[adminID] = true

	s, err := f.d.Text(context.Background(), menu.Actor{ID: adminID}, "Goldie")
	require.NoError(t, err)
	assert.Equal(t, "wizard:Goldie", s.Text)
}

func TestTextCommandsNeverReachWizard(t *testing.T) {
	f := newDispatcherFixture()
	f.wizard.active[adminID] = true

	s, err := f.d.Text(context.Background(), menu.Actor{ID: adminID}, "/confirm_12")
	require.NoError(t, err)
	assert.Equal(t, textUseButtons, s.Text)
	assert.Empty(t, f.wizard.inputs)
}

func TestTextWithoutSession(t *testing.T) {
	f := newDispatcherFixture()
	f.wizard.active[userID] = true

	for _, id := range []int64{adminID, userID} {
		s, err := f.d.Text(context.Background(), menu.Actor{ID: id}, "hello")
		require.NoError(t, err)
		assert.Equal(t, textUseButtons, s.Text)
	}
	assert.Empty(t, f.wizard.inputs)
}

func TestCancelClearsWizard(t *testing.T) {
	f := newDispatcherFixture()
	f.wizard.active[adminID] = true

	s, err := f.d.Cancel(context.Background(), menu.Actor{ID: adminID})
	require.NoError(t, err)
	assert.Equal(t, textCancelled, s.Text)
	assert.Equal(t, []string{"main"}, s.Tokens())
	assert.Equal(t, []int64{adminID}, f.wizard.cancelled)
}

func TestAdminRendersPanelRoute(t *testing.T) {
	f := newDispatcherFixture()
	_, err := f.d.Admin(context.Background(), menu.Actor{ID: userID})
	require.NoError(t, err)
	assert.Equal(t, []route.Route{route.Admin{}}, f.menu.rendered)
}

package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
)

type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	selects []int
	removes []int
	updates []mixtapev1.Track
	added   []mixtapev1.Track
	seeks   []float64
	results map[string][]mixtapev1.Track
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Search(_ context.Context, query string) (*mixtapev1.SearchResponse, error) {
	f.record("search")
	tracks := f.results[query]
	if len(tracks) == 0 {
		return &mixtapev1.SearchResponse{Message: "No songs found"}, nil
	}
	return &mixtapev1.SearchResponse{Tracks: tracks}, nil
}

func (f *fakeBackend) Add(_ context.Context, t mixtapev1.Track) error {
	f.record("add")
	f.added = append(f.added, t)
	return nil
}

func (f *fakeBackend) Remove(_ context.Context, index int) error {
	f.record("remove")
	f.removes = append(f.removes, index)
	return nil
}

func (f *fakeBackend) Update(_ context.Context, _ int, t mixtapev1.Track) error {
	f.record("update")
	f.updates = append(f.updates, t)
	return nil
}

func (f *fakeBackend) Share(context.Context) (string, error) {
	f.record("share")
	return "http://localhost:7878/?playlist=abc", nil
}

func (f *fakeBackend) TogglePlay(context.Context) error { f.record("toggle"); return nil }
func (f *fakeBackend) Next(context.Context) error       { f.record("next"); return nil }
func (f *fakeBackend) Previous(context.Context) error   { f.record("previous"); return nil }

func (f *fakeBackend) Select(_ context.Context, index int) error {
	f.record("select")
	f.selects = append(f.selects, index)
	return nil
}

func (f *fakeBackend) Seek(_ context.Context, position float64) error {
	f.record("seek")
	f.seeks = append(f.seeks, position)
	return nil
}

func (f *fakeBackend) Subscribe(ctx context.Context, _ chan<- *mixtapev1.Notification) error {
	<-ctx.Done()
	return nil
}

func wireSong(title string) mixtapev1.Track {
	return mixtapev1.Track{
		Title:    title,
		Artist:   "Artist",
		Album:    "Album",
		Duration: "3:00",
		AudioURL: "https://example.com/" + title + ".mp3",
	}
}

func newTestModel(t *testing.T, titles ...string) (*Model, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{results: map[string][]mixtapev1.Track{}}
	m := NewModel(context.Background(), backend)

	tracks := make([]mixtapev1.Track, len(titles))
	for i, title := range titles {
		tracks[i] = wireSong(title)
	}
	m.Update(notificationMsg{notification: &mixtapev1.Notification{
		Type: mixtapev1.NotificationTypeInitialState,
		State: &mixtapev1.PlaylistState{
			Tracks:       tracks,
			CurrentIndex: -1,
			State:        mixtapev1.PlaybackStateStopped,
		},
	}})
	return m, backend
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command, feeding its message back.
func press(t *testing.T, m *Model, msg tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	result := cmd()
	if result != nil {
		m.Update(result)
	}
	return result
}

func TestModel_TransportKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		call string
	}{
		{name: "space toggles", key: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, call: "toggle"},
		{name: "left goes back", key: tea.KeyMsg{Type: tea.KeyLeft}, call: "previous"},
		{name: "right goes forward", key: tea.KeyMsg{Type: tea.KeyRight}, call: "next"},
		{name: "s shares", key: runes("s"), call: "share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, backend := newTestModel(t, "One", "Two")
			press(t, m, tt.key)
			assert.Equal(t, []string{tt.call}, backend.calls)
		})
	}
}

func TestModel_SelectUnderCursor(t *testing.T) {
	m, backend := newTestModel(t, "One", "Two", "Three")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last track")

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []int{2}, backend.selects)
}

func TestModel_RemoveConfirmation(t *testing.T) {
	m, backend := newTestModel(t, "One", "Two")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.Update(runes("d"))
	assert.Equal(t, ConfirmView, m.view)
	assert.Contains(t, m.View(), `Remove "Two" from your playlist?`)

	m.Update(runes("n"))
	assert.Equal(t, PlaylistView, m.view)
	assert.Empty(t, backend.removes)

	m.Update(runes("d"))
	press(t, m, runes("y"))
	assert.Equal(t, PlaylistView, m.view)
	assert.Equal(t, []int{1}, backend.removes)
}

func TestModel_SearchAndAdd(t *testing.T) {
	m, backend := newTestModel(t)
	backend.results["weeknd"] = []mixtapev1.Track{wireSong("Blinding Lights"), wireSong("Save Your Tears")}

	m.Update(runes("/"))
	require.Equal(t, SearchView, m.view)
	m.query.SetValue("weeknd")

	msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, searchDoneMsg{}, msg)
	assert.Equal(t, ResultsView, m.view)
	assert.Len(t, m.results, 2)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, backend.added, 1)
	assert.Equal(t, "Save Your Tears", backend.added[0].Title)

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, PlaylistView, m.view)
}

func TestModel_SearchNoResults(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("/"))
	m.query.SetValue("zzzz")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ResultsView, m.view)
	assert.Empty(t, m.results)
	assert.Contains(t, m.View(), "No songs found")
}

func TestModel_StaleSearchIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.view = SearchView
	m.lastQuery = "newer"

	m.Update(searchDoneMsg{query: "older", tracks: []mixtapev1.Track{wireSong("Old")}})
	assert.Equal(t, SearchView, m.view)
	assert.Empty(t, m.results)
}

func TestModel_Edit(t *testing.T) {
	m, backend := newTestModel(t, "One")

	m.Update(runes("e"))
	require.Equal(t, EditView, m.view)
	assert.Equal(t, "One", m.form[0].Value())
	assert.Equal(t, "3:00", m.form[3].Value())

	m.form[0].SetValue("One (Live)")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.field)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PlaylistView, m.view)
	require.Len(t, backend.updates, 1)
	assert.Equal(t, "One (Live)", backend.updates[0].Title)
	assert.Equal(t, "Artist", backend.updates[0].Artist)
}

func TestModel_Seek(t *testing.T) {
	m, backend := newTestModel(t, "One")

	press(t, m, runes("]"))
	assert.Empty(t, backend.seeks, "no seek while stopped")

	m.Update(notificationMsg{notification: &mixtapev1.Notification{
		Type: mixtapev1.NotificationTypePlaybackChanged,
		State: &mixtapev1.PlaylistState{
			Tracks:       []mixtapev1.Track{wireSong("One")},
			CurrentIndex: 0,
			IsPlaying:    true,
			State:        mixtapev1.PlaybackStatePlaying,
			DurationMs:   180000,
		},
	}})
	m.Update(notificationMsg{notification: &mixtapev1.Notification{
		Type:     mixtapev1.NotificationTypeProgress,
		Progress: &mixtapev1.Progress{ElapsedMs: 90000, DurationMs: 180000, Fraction: 0.5},
	}})

	press(t, m, runes("]"))
	press(t, m, runes("["))
	require.Len(t, backend.seeks, 2)
	assert.InDelta(t, 0.6, backend.seeks[0], 1e-9)
	assert.InDelta(t, 0.4, backend.seeks[1], 1e-9)
}

func TestModel_BannerExpires(t *testing.T) {
	m, _ := newTestModel(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Update(notificationMsg{notification: &mixtapev1.Notification{
		Type: mixtapev1.NotificationTypeBanner,
		Banner: &mixtapev1.Banner{
			Message:   `"One" added to your playlist!`,
			Kind:      mixtapev1.BannerKindSuccess,
			ExpiresAt: now.Add(3 * time.Second),
		},
	}})
	assert.Contains(t, m.View(), `"One" added to your playlist!`)

	m.Update(tickMsg(now.Add(time.Second)))
	assert.NotNil(t, m.banner)

	m.Update(tickMsg(now.Add(3 * time.Second)))
	assert.Nil(t, m.banner)
	assert.NotContains(t, m.View(), "added to your playlist")
}

func TestModel_ActionErrorShowsBanner(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(actionDoneMsg{err: connect.NewError(connect.CodeAlreadyExists,
		errors.New("This song is already in your playlist!"))})
	require.NotNil(t, m.banner)
	assert.Equal(t, mixtapev1.BannerKindError, m.banner.Kind)
	assert.Equal(t, "This song is already in your playlist!", m.banner.Message)
}

func TestModel_CursorFollowsShrinkingPlaylist(t *testing.T) {
	m, _ := newTestModel(t, "One", "Two", "Three")
	m.cursor = 2

	m.Update(notificationMsg{notification: &mixtapev1.Notification{
		Type:  mixtapev1.NotificationTypePlaylistChanged,
		State: &mixtapev1.PlaylistState{Tracks: []mixtapev1.Track{wireSong("One")}, CurrentIndex: -1},
	}})
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "1. One - Artist (3:00)")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

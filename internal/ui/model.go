package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/domain/track"
)

// ViewState represents the current view.
type ViewState int

const (
	PlaylistView ViewState = iota
	SearchView
	ResultsView
	ConfirmView
	EditView
)

const (
	tickInterval   = 250 * time.Millisecond
	localBannerTTL = 3 * time.Second
	seekStep       = 0.1
)

var editLabels = []string{"Title", "Artist", "Album", "Duration (M:SS)", "Audio URL"}

// Model is the player state. All playlist and transport state mirrors the
// daemon's notifications.
type Model struct {
	ctx     context.Context
	backend Backend
	now     func() time.Time

	view  ViewState
	keys  keyMap
	help  help.Model
	bar   progress.Model
	query textinput.Model
	form  []textinput.Model
	field int
	width int

	state      mixtapev1.PlaylistState
	fraction   float64
	cursor     int
	results    []mixtapev1.Track
	resultIdx  int
	searching  bool
	lastQuery  string
	searchNote string
	editIndex  int
	banner     *mixtapev1.Banner
	shareURL   string
	notifyCh   chan *mixtapev1.Notification
	streamErr  error
	connected  bool
}

// NewModel creates a player model bound to a backend.
func NewModel(ctx context.Context, backend Backend) *Model {
	query := textinput.New()
	query.Placeholder = "Search songs, artists, or albums..."
	query.CharLimit = 120

	form := make([]textinput.Model, len(editLabels))
	for i, label := range editLabels {
		form[i] = textinput.New()
		form[i].Placeholder = label
		form[i].CharLimit = 300
	}

	return &Model{
		ctx:     ctx,
		backend: backend,
		now:     time.Now,
		view:    PlaylistView,
		keys:    newKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		query:   query,
		form:    form,
		state:   mixtapev1.PlaylistState{CurrentIndex: -1, State: mixtapev1.PlaybackStateStopped},
	}
}

// Init starts the notification stream and the banner clock.
func (m *Model) Init() tea.Cmd {
	m.notifyCh = make(chan *mixtapev1.Notification, 32)
	return tea.Batch(m.subscribe(), m.waitForNotification(), tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(msg.Width-16, 10)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case notificationMsg:
		m.apply(msg.notification)
		return m, m.waitForNotification()

	case streamClosedMsg:
		m.connected = false
		m.streamErr = msg.err
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.showLocal(ErrorMessage(msg.err), mixtapev1.BannerKindError)
		}
		return m, nil

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case shareDoneMsg:
		if msg.err != nil {
			m.showLocal(ErrorMessage(msg.err), mixtapev1.BannerKindError)
			return m, nil
		}
		m.shareURL = msg.url
		m.showLocal("Share link created", mixtapev1.BannerKindSuccess)
		return m, nil

	case tickMsg:
		if m.banner != nil && !time.Time(msg).Before(m.banner.ExpiresAt) {
			m.banner = nil
		}
		return m, tick()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards other messages, such as cursor blinks, to the focused input.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.query, cmd = m.query.Update(msg)
	case EditView:
		m.form[m.field], cmd = m.form[m.field].Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.view {
	case SearchView:
		return m.handleSearchKeys(msg)
	case ResultsView:
		return m.handleResultsKeys(msg)
	case ConfirmView:
		return m.handleConfirmKeys(msg)
	case EditView:
		return m.handleEditKeys(msg)
	default:
		return m.handlePlaylistKeys(msg)
	}
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		return m, m.action(m.backend.TogglePlay)
	case key.Matches(msg, m.keys.previous):
		return m, m.action(m.backend.Previous)
	case key.Matches(msg, m.keys.next):
		return m, m.action(m.backend.Next)
	case key.Matches(msg, m.keys.seekBack):
		return m, m.seek(-seekStep)
	case key.Matches(msg, m.keys.seekFwd):
		return m, m.seek(seekStep)
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.enter):
		if len(m.state.Tracks) > 0 {
			index := m.cursor
			return m, m.action(func(ctx context.Context) error { return m.backend.Select(ctx, index) })
		}
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.query.SetValue("")
		return m, m.query.Focus()
	case key.Matches(msg, m.keys.remove):
		if len(m.state.Tracks) > 0 {
			m.view = ConfirmView
		}
	case key.Matches(msg, m.keys.edit):
		if len(m.state.Tracks) > 0 {
			return m, m.startEdit(m.cursor)
		}
	case key.Matches(msg, m.keys.share):
		return m, m.share()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.query.Blur()
		m.view = PlaylistView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		query := m.query.Value()
		m.searching = true
		m.lastQuery = strings.TrimSpace(query)
		return m, m.search(query)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.back):
		m.view = PlaylistView
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		return m, m.query.Focus()
	case key.Matches(msg, m.keys.up):
		if m.resultIdx > 0 {
			m.resultIdx--
		}
	case key.Matches(msg, m.keys.down):
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
	case key.Matches(msg, m.keys.enter):
		if len(m.results) > 0 {
			t := m.results[m.resultIdx]
			return m, m.action(func(ctx context.Context) error { return m.backend.Add(ctx, t) })
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = PlaylistView
		index := m.cursor
		return m, m.action(func(ctx context.Context) error { return m.backend.Remove(ctx, index) })
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = PlaylistView
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.blurForm()
		m.view = PlaylistView
		return m, nil
	case key.Matches(msg, m.keys.field):
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.form) - 1
		}
		m.form[m.field].Blur()
		m.field = (m.field + step) % len(m.form)
		return m, m.form[m.field].Focus()
	case key.Matches(msg, m.keys.enter):
		index, t := m.editIndex, m.formTrack()
		m.blurForm()
		m.view = PlaylistView
		return m, m.action(func(ctx context.Context) error { return m.backend.Update(ctx, index, t) })
	}

	var cmd tea.Cmd
	m.form[m.field], cmd = m.form[m.field].Update(msg)
	return m, cmd
}

func (m *Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	if msg.query != m.lastQuery {
		// Results of an older search; a newer one is in flight.
		return m, nil
	}
	if msg.err != nil {
		m.showLocal(ErrorMessage(msg.err), mixtapev1.BannerKindError)
		return m, nil
	}
	m.query.Blur()
	m.results = msg.tracks
	m.resultIdx = 0
	m.searchNote = msg.message
	m.view = ResultsView
	return m, nil
}

// apply folds a daemon notification into the model.
func (m *Model) apply(n *mixtapev1.Notification) {
	if n == nil {
		return
	}
	m.connected = true
	if n.State != nil {
		m.state = *n.State
		m.fraction = fraction(n.State.ElapsedMs, n.State.DurationMs)
		m.clampCursor()
	}
	if n.Progress != nil {
		m.state.ElapsedMs = n.Progress.ElapsedMs
		m.state.DurationMs = n.Progress.DurationMs
		m.fraction = n.Progress.Fraction
	}
	if n.Banner != nil {
		b := *n.Banner
		m.banner = &b
	}
}

func (m *Model) showLocal(message, kind string) {
	m.banner = &mixtapev1.Banner{
		Message:   message,
		Kind:      kind,
		ExpiresAt: m.now().Add(localBannerTTL),
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tracks) {
		m.cursor = len(m.state.Tracks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) startEdit(index int) tea.Cmd {
	t := m.state.Tracks[index]
	values := []string{t.Title, t.Artist, t.Album, t.Duration, t.AudioURL}
	for i := range m.form {
		m.form[i].SetValue(values[i])
		m.form[i].Blur()
	}
	m.editIndex = index
	m.field = 0
	m.view = EditView
	return m.form[0].Focus()
}

func (m *Model) formTrack() mixtapev1.Track {
	return mixtapev1.Track{
		Title:    m.form[0].Value(),
		Artist:   m.form[1].Value(),
		Album:    m.form[2].Value(),
		Duration: m.form[3].Value(),
		AudioURL: m.form[4].Value(),
	}
}

func (m *Model) blurForm() {
	for i := range m.form {
		m.form[i].Blur()
	}
}

func (m *Model) subscribe() tea.Cmd {
	ch := m.notifyCh
	return func() tea.Msg {
		err := m.backend.Subscribe(m.ctx, ch)
		return streamClosedMsg{err: err}
	}
}

func (m *Model) waitForNotification() tea.Cmd {
	ch := m.notifyCh
	return func() tea.Msg {
		select {
		case n := <-ch:
			return notificationMsg{notification: n}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) action(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(m.ctx)}
	}
}

func (m *Model) seek(delta float64) tea.Cmd {
	if m.state.State == mixtapev1.PlaybackStateStopped || m.state.DurationMs <= 0 {
		return nil
	}
	position := min(max(m.fraction+delta, 0), 1)
	return m.action(func(ctx context.Context) error { return m.backend.Seek(ctx, position) })
}

func (m *Model) search(query string) tea.Cmd {
	trimmed := strings.TrimSpace(query)
	return func() tea.Msg {
		resp, err := m.backend.Search(m.ctx, query)
		if err != nil {
			return searchDoneMsg{query: trimmed, err: err}
		}
		return searchDoneMsg{query: trimmed, tracks: resp.Tracks, message: resp.Message}
	}
}

func (m *Model) share() tea.Cmd {
	return func() tea.Msg {
		url, err := m.backend.Share(m.ctx)
		return shareDoneMsg{url: url, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func fraction(elapsedMs, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return min(max(float64(elapsedMs)/float64(durationMs), 0), 1)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("mixtape"))
	b.WriteString("\n")

	switch m.view {
	case SearchView:
		b.WriteString(m.renderSearch())
	case ResultsView:
		b.WriteString(m.renderResults())
	case ConfirmView:
		b.WriteString(m.renderConfirm())
	case EditView:
		b.WriteString(m.renderEdit())
	default:
		b.WriteString(m.renderPlaylist())
	}

	if banner := m.renderBanner(); banner != "" {
		b.WriteString("\n")
		b.WriteString(banner)
	}
	if !m.connected && m.streamErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(fmt.Sprintf("Disconnected: %v", m.streamErr)))
	}
	return b.String()
}

func (m *Model) renderPlaylist() string {
	var b strings.Builder
	b.WriteString(m.renderNowPlaying())
	b.WriteString("\n\n")

	if len(m.state.Tracks) == 0 {
		b.WriteString(styles.muted.Render("Your playlist is empty. Press / to search for songs."))
		b.WriteString("\n")
	}
	for i, t := range m.state.Tracks {
		marker := "  "
		if i == m.state.CurrentIndex {
			marker = "♪ "
		}
		line := fmt.Sprintf("%s%d. %s - %s (%s)", marker, i+1, t.Title, t.Artist, t.Duration)
		switch {
		case i == m.cursor:
			line = styles.cursor.Render("> " + line)
		case i == m.state.CurrentIndex:
			line = styles.current.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.shareURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.info.Render("Share: " + m.shareURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderNowPlaying() string {
	current := "Nothing selected"
	if i := m.state.CurrentIndex; i >= 0 && i < len(m.state.Tracks) {
		t := m.state.Tracks[i]
		current = fmt.Sprintf("%s - %s", t.Title, t.Artist)
	}

	icon := "■"
	switch m.state.State {
	case mixtapev1.PlaybackStatePlaying:
		icon = "▶"
	case mixtapev1.PlaybackStatePaused:
		icon = "⏸"
	}

	elapsed := track.FormatDuration(time.Duration(m.state.ElapsedMs) * time.Millisecond)
	total := track.FormatDuration(time.Duration(m.state.DurationMs) * time.Millisecond)
	return fmt.Sprintf("%s %s\n%s %s / %s", icon, current, m.bar.ViewAs(m.fraction), elapsed, total)
}

func (m *Model) renderSearch() string {
	status := ""
	if m.searching {
		status = "\n" + styles.muted.Render("Searching...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	return fmt.Sprintf("Search\n\n%s%s\n\n%s", m.query.View(), status, helpView)
}

func (m *Model) renderResults() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Results for %q\n\n", m.lastQuery))
	if m.searchNote != "" {
		b.WriteString(styles.muted.Render(m.searchNote))
		b.WriteString("\n")
	}
	for i, t := range m.results {
		line := fmt.Sprintf("%s - %s · %s (%s)", t.Title, t.Artist, t.Album, t.Duration)
		if i == m.resultIdx {
			b.WriteString(styles.cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	addKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add"))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{addKey, m.keys.search, m.keys.back}))
	return b.String()
}

func (m *Model) renderConfirm() string {
	title := ""
	if m.cursor < len(m.state.Tracks) {
		title = m.state.Tracks[m.cursor].Title
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("Remove %q from your playlist?\n\n%s", title, helpView)
}

func (m *Model) renderEdit() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Edit track %d\n\n", m.editIndex+1))
	for i, input := range m.form {
		b.WriteString(styles.muted.Render(editLabels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	saveKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{saveKey, m.keys.field, m.keys.back}))
	return b.String()
}

func (m *Model) renderBanner() string {
	if m.banner == nil || !m.now().Before(m.banner.ExpiresAt) {
		return ""
	}
	switch m.banner.Kind {
	case mixtapev1.BannerKindError:
		return styles.err.Render(m.banner.Message)
	case mixtapev1.BannerKindSuccess:
		return styles.success.Render(m.banner.Message)
	default:
		return styles.info.Render(m.banner.Message)
	}
}

package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dash/internal/config"
	"github.com/idilsaglam/dash/internal/store/memstore"
	"github.com/idilsaglam/dash/internal/taskstore"
	"github.com/idilsaglam/dash/internal/ui"
	"github.com/idilsaglam/dash/internal/widget"
)

func newStore(t *testing.T, texts ...string) (*taskstore.Store, *memstore.Store) {
	t.Helper()
	slots := memstore.New()
	n := 0
	s := taskstore.New(slots, taskstore.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}))
	for _, text := range texts {
		_, ok := s.Add(text)
		require.True(t, ok)
	}
	return s, slots
}

func newModel(t *testing.T, s *taskstore.Store) Model {
	t.Helper()
	theme := ui.NewTheme("classic", ui.NewRenderer(&bytes.Buffer{}, ui.ColorNever))
	m := New(context.Background(), s, nil, theme, 0)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggle_PersistsSelected(t *testing.T) {
	s, slots := newStore(t, "A", "B")
	writes := slots.Writes()
	m := newModel(t, s)

	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, s.Tasks()[0].Complete)
	assert.False(t, s.Tasks()[1].Complete)
	assert.Equal(t, writes+1, slots.Writes())

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, runes("x"))
	assert.True(t, s.Tasks()[1].Complete)
}

func TestAdd_AppendsAndSelects(t *testing.T) {
	s, _ := newStore(t, "A")
	m := newModel(t, s)

	m = send(m, runes("a"))
	require.True(t, m.adding)
	m = send(m, runes("Buy milk"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Buy milk", s.Tasks()[1].Text)
	assert.Equal(t, 1, m.list.Index())
	assert.Len(t, m.list.Items(), 2)
}

func TestAdd_EmptyShowsErrorWithoutPersisting(t *testing.T) {
	s, slots := newStore(t)
	m := newModel(t, s)

	m = send(m, runes("a"))
	m = send(m, runes("   "))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.adding)
	assert.Equal(t, "text cannot be empty", m.addErr)
	assert.Equal(t, 0, slots.Writes())
	assert.Contains(t, m.View(), "text cannot be empty")
}

func TestAdd_EscCancels(t *testing.T) {
	s, _ := newStore(t)
	m := newModel(t, s)

	m = send(m, runes("a"))
	m = send(m, runes("nope"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.adding)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, m.input.Value())
}

func TestRemove_ClampsCursor(t *testing.T) {
	s, _ := newStore(t, "A", "B")
	m := newModel(t, s)

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(m, runes("d"))

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "A", s.Tasks()[0].Text)
	assert.Equal(t, 0, m.list.Index())

	m = send(m, runes("d"))
	assert.Equal(t, 0, s.Len())
	// Nothing selected; another delete is a no-op.
	send(m, runes("d"))
	assert.Equal(t, 0, s.Len())
}

func TestQuit(t *testing.T) {
	s, _ := newStore(t)
	m := newModel(t, s)

	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), k.String())
	}
}

func TestView_ShowsHeaderAndTasks(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Call mom")
	s.Toggle(s.Tasks()[1].ID)
	m := newModel(t, s)

	v := m.View()
	assert.Contains(t, v, "Tasks: 2")
	assert.Contains(t, v, "Buy milk")
	assert.Contains(t, v, "Call mom")
	assert.Contains(t, v, "widgets disabled")
}

func TestSnapshotMsg_RendersWidgets(t *testing.T) {
	s, _ := newStore(t)
	theme := ui.NewTheme("classic", ui.NewRenderer(&bytes.Buffer{}, ui.ColorNever))
	board := widget.NewBoard(widgetConfig(), nil, nil)
	m := New(context.Background(), s, board, theme, time.Minute)

	assert.Contains(t, m.View(), "loading widgets...")

	m = send(m, snapshotMsg(widget.Snapshot{
		Rates:    widget.Cell[widget.Rates]{Value: widget.FallbackRates("78.600", "89.791"), Fallback: true},
		Location: widget.Cell[widget.Location]{Value: widget.NewLocation(55.75, 37.62, "config")},
	}))
	assert.False(t, m.refreshing)
	v := m.View()
	assert.Contains(t, v, "1 USD = 78.600 RUB")
	assert.Contains(t, v, "55.7500, 37.6200")
}

func TestTick_SkipsFetchWhileRefreshing(t *testing.T) {
	s, _ := newStore(t)
	theme := ui.NewTheme("mono", ui.NewRenderer(&bytes.Buffer{}, ui.ColorNever))
	board := widget.NewBoard(widgetConfig(), nil, nil)
	m := New(context.Background(), s, board, theme, time.Minute)
	require.True(t, m.refreshing)

	m = send(m, tickMsg(time.Now()))
	assert.True(t, m.refreshing)

	m = send(m, snapshotMsg{})
	require.False(t, m.refreshing)
	m = send(m, tickMsg(time.Now()))
	assert.True(t, m.refreshing)
}

func TestNarrowLayoutStacksPanels(t *testing.T) {
	s, _ := newStore(t, "A")
	m := newModel(t, s)

	wide := m.View()
	assert.Equal(t, lineOf(wide, "Tasks: 1"), lineOf(wide, "widgets disabled"))

	narrow := send(m, tea.WindowSizeMsg{Width: 60, Height: 40}).View()
	assert.Greater(t, lineOf(narrow, "widgets disabled"), lineOf(narrow, "Tasks: 1"))
}

func lineOf(view, substr string) int {
	for i, line := range strings.Split(view, "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

func widgetConfig() config.Widgets {
	cfg := config.Default().Widgets
	lat, lon := 55.75, 37.62
	cfg.Location.Latitude, cfg.Location.Longitude = &lat, &lon
	return cfg
}

// Package tui is the interactive dashboard: the task list with a widget
// panel next to it.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/dash/internal/app"
	"github.com/idilsaglam/dash/internal/taskstore"
	"github.com/idilsaglam/dash/internal/ui"
	"github.com/idilsaglam/dash/internal/widget"
)

const (
	// wideLayout is the terminal width from which widgets sit beside the list.
	wideLayout   = 100
	widgetHeight = 10
	maxInput     = 200
)

type (
	snapshotMsg widget.Snapshot
	tickMsg     time.Time
)

type keyMap struct {
	Toggle, Add, Remove, Refresh, Quit key.Binding
}

var keys = keyMap{
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh widgets")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model of the dashboard. Every mutation goes
// straight to the task store, which persists it.
type Model struct {
	ctx      context.Context
	tasks    *taskstore.Store
	board    *widget.Board
	theme    ui.Theme
	interval time.Duration

	list   list.Model
	input  textinput.Model
	adding bool
	addErr string

	snap       widget.Snapshot
	haveSnap   bool
	refreshing bool

	width, height int
}

// New builds the dashboard model. board may be nil, in which case no
// widgets are shown. A non-positive interval disables periodic refresh.
func New(ctx context.Context, tasks *taskstore.Store, board *widget.Board, theme ui.Theme, interval time.Duration) Model {
	l := list.New(nil, delegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.HelpStyle = theme.Help
	l.Styles.PaginationStyle = theme.Help
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding { return []key.Binding{keys.Toggle, keys.Add, keys.Remove, keys.Refresh} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task..."
	ti.CharLimit = maxInput

	m := Model{
		ctx:        ctx,
		tasks:      tasks,
		board:      board,
		theme:      theme,
		interval:   interval,
		list:       l,
		input:      ti,
		refreshing: board != nil,
	}
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m Model) fetch() tea.Cmd {
	if m.board == nil {
		return nil
	}
	ctx, board := m.ctx, m.board
	return func() tea.Msg { return snapshotMsg(board.Refresh(ctx)) }
}

func (m Model) tick() tea.Cmd {
	if m.interval <= 0 || m.board == nil {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// sync rebuilds the list items from the store.
func (m *Model) sync() tea.Cmd {
	tasks := m.tasks.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = item{task: t, index: i + 1}
	}
	cmd := m.list.SetItems(items)
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m Model) selected() (item, bool) {
	it, ok := m.list.SelectedItem().(item)
	return it, ok
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-7
	if m.width >= wideLayout {
		w = m.width*3/5 - 4
	} else {
		h -= widgetHeight
	}
	if m.adding {
		h -= 4
	}
	m.list.SetSize(max(w, 20), max(h, 3))
	m.input.Width = max(w-6, 10)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case snapshotMsg:
		m.snap = widget.Snapshot(msg)
		m.haveSnap = true
		m.refreshing = false
		return m, nil
	case tickMsg:
		if m.refreshing {
			return m, m.tick()
		}
		m.refreshing = true
		return m, tea.Batch(m.fetch(), m.tick())
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(k, keys.Quit):
			// esc clears an applied filter before it quits.
			if k.Type == tea.KeyEsc && m.list.IsFiltered() {
				break
			}
			return m, tea.Quit
		case key.Matches(k, keys.Toggle):
			if it, ok := m.selected(); ok {
				m.tasks.Toggle(it.task.ID)
				cmd := m.sync()
				return m, cmd
			}
			return m, nil
		case key.Matches(k, keys.Remove):
			if it, ok := m.selected(); ok {
				m.tasks.Remove(it.task.ID)
				cmd := m.sync()
				return m, cmd
			}
			return m, nil
		case key.Matches(k, keys.Add):
			m.adding = true
			m.addErr = ""
			m.input.SetValue("")
			m.resize()
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(k, keys.Refresh):
			if m.board == nil || m.refreshing {
				return m, nil
			}
			m.refreshing = true
			return m, m.fetch()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.stopAdding()
			return m, nil
		case tea.KeyEnter:
			if _, added := m.tasks.Add(m.input.Value()); !added {
				m.addErr = "text cannot be empty"
				return m, nil
			}
			m.stopAdding()
			cmd := m.sync()
			if !m.list.IsFiltered() {
				m.list.Select(len(m.list.Items()) - 1)
			}
			return m, cmd
		}
		m.addErr = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m Model) widgetLines() []string {
	if m.board == nil {
		return []string{m.theme.Muted.Render("widgets disabled")}
	}
	if !m.haveSnap {
		return []string{m.theme.Muted.Render("loading widgets...")}
	}
	lines := m.theme.WidgetLines(m.snap)
	if m.refreshing {
		lines = append(lines, "", m.theme.Muted.Render("refreshing..."))
	}
	return lines
}

func (m Model) View() string {
	done, pending := m.tasks.Stats()
	left := []string{
		m.theme.Header(done, pending),
		m.theme.Muted.Render(ui.ProgressBar(done, done+pending, 20)),
		"",
		m.list.View(),
	}
	if m.adding {
		title := m.theme.Accent.Render("Add task")
		if m.addErr != "" {
			title += "  " + m.theme.Error.Render(m.addErr)
		}
		left = append(left, m.theme.Frame(title+"\n"+m.input.View()))
	}

	tasks := m.theme.Panel(left)
	side := m.theme.Panel(m.widgetLines())
	if m.width > 0 && m.width < wideLayout {
		return lipgloss.JoinVertical(lipgloss.Left, tasks, side)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tasks, " ", side)
}

// Run opens the dashboard full screen until the user quits or ctx ends.
func Run(ctx context.Context, c *app.Container, theme ui.Theme) error {
	m := New(ctx, c.Tasks, c.Board, theme, c.Config.Widgets.RefreshInterval.Duration)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	c.Logger.Debug("dashboard open", "tasks", c.Tasks.Len())
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}


package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/dash/internal/model"
	"github.com/idilsaglam/dash/internal/ui"
)

// item adapts a task to bubbles/list. index is the 1-based position in the
// full list, kept stable while filtering so it matches `dash done <n>`.
type item struct {
	task  model.Task
	index int
}

func (i item) FilterValue() string { return i.task.Text }

// delegate renders one task per line.
type delegate struct{ theme ui.Theme }

func (delegate) Height() int                         { return 1 }
func (delegate) Spacing() int                        { return 0 }
func (delegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+d.theme.TaskLine(it.index, it.task))
}

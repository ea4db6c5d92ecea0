package ui

import (
	"fmt"
	"strconv"

	"github.com/idilsaglam/dash/internal/model"
	"github.com/idilsaglam/dash/internal/widget"
)

// maxText is the widest task text shown before truncation.
const maxText = 80

// Header renders the title line with live counts.
func (t Theme) Header(done, pending int) string {
	return fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render("Tasks: "+strconv.Itoa(done+pending)),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
	)
}

// TaskLine renders one task with its 1-based index and short id.
func (t Theme) TaskLine(index int, task model.Task) string {
	box := t.Muted.Render(t.BoxUnchecked)
	text := Truncate(task.Text, maxText)
	if task.Complete {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	return fmt.Sprintf("%s %s %s  %s",
		t.Muted.Render(fmt.Sprintf("%2d.", index)), box, text, t.Muted.Render(task.ShortID()))
}

// TaskLines renders tasks in list order. Indexes match the order given.
func (t Theme) TaskLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{t.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, task := range tasks {
		out = append(out, t.TaskLine(i+1, task))
	}
	return out
}

// GroupedLines renders pending tasks first, then completed ones. Indexes
// stay those of the full list so they can be passed to done/rm.
func (t Theme) GroupedLines(tasks []model.Task) []string {
	var pend, done []string
	for i, task := range tasks {
		if task.Complete {
			done = append(done, t.TaskLine(i+1, task))
		} else {
			pend = append(pend, t.TaskLine(i+1, task))
		}
	}
	section := func(title string, lines []string) []string {
		out := []string{t.Accent.Render(title)}
		if len(lines) == 0 {
			return append(out, t.Muted.Render("(none)"))
		}
		return append(out, lines...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func cellNote[T any](t Theme, c widget.Cell[T]) string {
	switch {
	case c.Fallback:
		return t.Pending.Render(" (fallback values)")
	case c.Stale:
		return t.Pending.Render(" (stale, fetched " + c.FetchedAt.Local().Format("15:04") + ")")
	}
	return ""
}

// RatesLines renders the currency widget.
func (t Theme) RatesLines(c widget.Cell[widget.Rates]) []string {
	title := t.Accent.Render("Rates")
	if !c.OK() {
		return []string{title, t.Error.Render("unavailable: " + c.Err.Error())}
	}
	return []string{
		title + t.Muted.Render(" ("+c.Value.Source+")") + cellNote(t, c),
		fmt.Sprintf("1 USD = %s RUB", c.Value.USD),
		fmt.Sprintf("1 EUR = %s RUB", c.Value.EUR),
	}
}

// LocationLines renders the map widget.
func (t Theme) LocationLines(c widget.Cell[widget.Location]) []string {
	title := t.Accent.Render("Location")
	if !c.OK() {
		return []string{title, t.Error.Render("unavailable: " + c.Err.Error())}
	}
	v := c.Value
	return []string{
		title + t.Muted.Render(" ("+v.Source+")") + cellNote(t, c),
		fmt.Sprintf("%s, %s", strconv.FormatFloat(v.Lat, 'f', 4, 64), strconv.FormatFloat(v.Lon, 'f', 4, 64)),
		t.Muted.Render("Map: ") + v.LinkURL,
	}
}

// WidgetLines renders every widget of a snapshot, separated by blank lines.
func (t Theme) WidgetLines(s widget.Snapshot) []string {
	lines := t.RatesLines(s.Rates)
	lines = append(lines, "")
	return append(lines, t.LocationLines(s.Location)...)
}

package model

import "encoding/json"

// Task is the domain model for a dashboard to-do entry.
type Task struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}

// wireTask is the decoding shape. Lists written by the browser version of
// the dashboard carry the text under "task" instead of "text".
type wireTask struct {
	ID       string  `json:"id"`
	Text     *string `json:"text"`
	Legacy   *string `json:"task"`
	Complete bool    `json:"complete"`
}

// UnmarshalJSON accepts both the current and the legacy record shape.
func (t *Task) UnmarshalJSON(b []byte) error {
	var w wireTask
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.Complete = w.Complete
	switch {
	case w.Text != nil:
		t.Text = *w.Text
	case w.Legacy != nil:
		t.Text = *w.Legacy
	default:
		t.Text = ""
	}
	return nil
}

// Toggled returns a copy with the completion flag inverted.
func (t Task) Toggled() Task {
	t.Complete = !t.Complete
	return t
}

// ShortID is the id prefix shown next to tasks in listings.
func (t Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

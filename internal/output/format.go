// Package output encodes the task list for machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/dash/internal/model"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// record is the export shape of a task. It mirrors the storage record.
type record struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Complete bool   `json:"complete" yaml:"complete"`
}

func records(tasks []model.Task) []record {
	out := make([]record, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, record{ID: t.ID, Text: t.Text, Complete: t.Complete})
	}
	return out
}

// ParseFormat normalizes a format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// WriteTasks encodes tasks to w in format.
func WriteTasks(w io.Writer, tasks []model.Task, format string) error {
	return Write(w, records(tasks), format)
}

// Write encodes any value to w in format.
func Write(w io.Writer, v any, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

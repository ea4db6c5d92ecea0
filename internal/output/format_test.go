package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dash/internal/model"
)

var sample = []model.Task{
	{ID: "id-1", Text: "Buy milk"},
	{ID: "id-2", Text: "Call mom", Complete: true},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": "json", "JSON": "json", "yaml": "yaml", " yml ": "yaml"} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteTasks_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, sample, FormatJSON))
	assert.JSONEq(t, `[
		{"id":"id-1","text":"Buy milk","complete":false},
		{"id":"id-2","text":"Call mom","complete":true}
	]`, buf.String())
}

func TestWriteTasks_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteTasks_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, sample, FormatYAML))
	assert.Equal(t, `- id: id-1
  text: Buy milk
  complete: false
- id: id-2
  text: Call mom
  complete: true
`, buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sample, "toml"))
}

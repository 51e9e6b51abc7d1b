package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/trustscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		score     *schema.Score
		expected  string
	}{
		{name: "precision 2", precision: 2, score: schema.ScorePtr(0.756), expected: "0.76"},
		{name: "precision 1", precision: 1, score: schema.ScorePtr(0.76), expected: "0.8"},
		{name: "one", precision: 2, score: schema.ScorePtr(1), expected: "1.00"},
		{name: "null", precision: 2, score: nil, expected: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createFormatters(tt.precision, missingValue)
			assert.Equal(t, tt.expected, f.score(tt.score))
		})
	}

	ms := int64(42)
	f := createFormatters(2, "")
	assert.Equal(t, "42", f.latency(&ms))
	assert.Equal(t, "", f.latency(nil))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []string{"a", "b"}))
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	assert.ErrorContains(t, err, "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"name", "description"}, func(w *csv.Writer) error {
		return w.Write([]string{"widgets", "a value, with comma"})
	})
	require.NoError(t, err)
	assert.Equal(t, "name,description\nwidgets,\"a value, with comma\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Wrote test")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("file", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(tmpFile, func(w io.Writer) error {
			_, err := w.Write([]byte("content"))
			return err
		}, "Wrote test")
		require.NoError(t, err)

		content, err := os.ReadFile(tmpFile)
		require.NoError(t, err)
		assert.Equal(t, "content", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(tmpFile, func(io.Writer) error { return assert.AnError }, "Wrote test")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "Wrote test")
		assert.Error(t, err)
	})
}

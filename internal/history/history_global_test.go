package history

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trustscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing a missing file is not an error
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
}

func TestClearHistory_Edges(t *testing.T) {
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
}

func TestHistoryStoreManager_Empty(t *testing.T) {
	mgr := &HistoryStoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())
}

func TestPrintHistoryStatus(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		var buf bytes.Buffer
		PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
		assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())
	})

	t.Run("connected", func(t *testing.T) {
		var buf bytes.Buffer
		now := time.Now()
		PrintHistoryStatus(&buf, schema.HistoryStatus{
			Backend:          "sqlite",
			Connected:        true,
			TotalRuns:        3,
			LastRunID:        3,
			LastRunTime:      now,
			OldestRunTime:    now.Add(-time.Hour),
			TotalEvaluations: 7,
			TableSizes:       map[string]int64{evaluationsTable: 7, runsTable: 3},
		})
		out := buf.String()
		assert.Contains(t, out, "Total Runs: 3")
		assert.Contains(t, out, "Last Run ID: 3")
		assert.Contains(t, out, "Total Evaluations: 7")
		// Tables print in sorted order
		assert.Less(t,
			bytes.Index(buf.Bytes(), []byte(evaluationsTable)),
			bytes.Index(buf.Bytes(), []byte(runsTable)))
	})
}

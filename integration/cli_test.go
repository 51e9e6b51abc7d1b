//go:build basic

package integration

import (
	"bufio"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoInput(t *testing.T) {
	stdout, stderr, err := runTrustscore(t, nil)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Empty(t, stdout)
	assert.Equal(t, "No command or URLs provided\n", stderr)
}

func TestScoreNDJSON(t *testing.T) {
	ctxFile := writeContextFile(t)
	stdout, _, err := runTrustscore(t, nil, "--ndjson", "--offline", "--context-file", ctxFile, widgetsURL)
	require.NoError(t, err)

	scanner := bufio.NewScanner(strings.NewReader(stdout))
	var lines []map[string]any
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "widgets", lines[0]["name"])
	assert.Equal(t, "CODE", lines[0]["category"])
	assert.InDelta(t, 0.4, lines[0]["net_score"], 1e-9)
}

func TestScoreThresholdFromEnv(t *testing.T) {
	ctxFile := writeContextFile(t)
	stdout, _, err := runTrustscore(t, []string{"NETSCORE_THRESHOLD=0.3"},
		"score", "--output", "json", "--offline", "--context-file", ctxFile, widgetsURL)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "widgets"`)
	assert.Contains(t, stdout, `"net_score": 0.4`)
}

func TestUnknownURLDegrades(t *testing.T) {
	ctxFile := writeContextFile(t)
	stdout, stderr, err := runTrustscore(t, nil, "--ndjson", "--offline", "--context-file", ctxFile, "https://example.com/not-an-artifact")
	require.NoError(t, err)
	assert.Contains(t, stdout+stderr, "not-an-artifact")
}

func TestMetricsJSON(t *testing.T) {
	stdout, _, err := runTrustscore(t, nil, "metrics", "--output", "json")
	require.NoError(t, err)

	var plan struct {
		Metrics []map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	assert.NotEmpty(t, plan.Metrics)
}

func TestShimsDryRun(t *testing.T) {
	stdout, _, err := runTrustscore(t, nil, "install", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "Installing dependencies...\ngo mod download\n", stdout)

	stdout, _, err = runTrustscore(t, nil, "test", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "Running tests...\ngo test ./... -cover\n", stdout)
}

func TestSQLiteHistory(t *testing.T) {
	ctxFile := writeContextFile(t)
	dbFile := filepath.Join(t.TempDir(), "history.db")
	env := []string{"TRUSTSCORE_HISTORY_BACKEND=sqlite", "TRUSTSCORE_HISTORY_DB_CONNECT=" + dbFile}

	_, _, err := runTrustscore(t, env, "--offline", "--context-file", ctxFile, widgetsURL)
	require.NoError(t, err)

	stdout, _, err := runTrustscore(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Runs: 1")
	assert.Contains(t, stdout, "Total Evaluations: 1")
}

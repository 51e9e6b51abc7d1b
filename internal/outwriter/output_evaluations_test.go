package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleEvaluations() []schema.Evaluation {
	code := schema.CodeCategory
	scored := schema.NewEmptyRecord("widgets")
	scored.Category = &code
	scored.NetScore = schema.ScorePtr(0.755)
	scored.NetScoreLatency = ptr(int64(12))
	scored.RampUpTime = schema.ScorePtr(0.5)
	scored.RampUpTimeLatency = ptr(int64(3))
	scored.BusFactor = schema.ScorePtr(0.75)
	scored.License = schema.ScorePtr(1)
	scored.SizeScore = schema.SizeScore{
		RaspberryPi: schema.ScorePtr(0.2),
		JetsonNano:  schema.ScorePtr(0.6),
		DesktopPC:   schema.ScorePtr(0.75),
		AWSServer:   schema.ScorePtr(0.8),
	}

	return []schema.Evaluation{
		{
			Target:         schema.Target{URL: "https://github.com/acme/widgets", Kind: schema.GitHubRepoSource, Category: &code, Name: "widgets"},
			Record:         scored,
			NetScoreBinary: ptr(1),
		},
		{
			Target:  schema.Target{URL: "https://example.com/x", Kind: schema.UnknownSource},
			Record:  schema.NewEmptyRecord("https://example.com/x"),
			Warning: "no context provider for url",
		},
	}
}

func TestWriteJSONEvaluations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONEvaluations(&buf, sampleEvaluations()))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "widgets", records[0]["name"])
	assert.Equal(t, "CODE", records[0]["category"])
	assert.InDelta(t, 0.755, records[0]["net_score"], 1e-9)
	assert.Nil(t, records[1]["category"])
	assert.Nil(t, records[1]["net_score"])
	assert.Contains(t, buf.String(), "\n  {")
}

func TestWriteNDJSONEvaluations(t *testing.T) {
	evals := sampleEvaluations()
	bad := schema.Score(1.5)
	invalid := schema.NewEmptyRecord("broken")
	invalid.NetScore = &bad
	evals = append(evals, schema.Evaluation{
		Target: schema.Target{URL: "https://github.com/acme/broken"},
		Record: invalid,
	})

	var out, errOut bytes.Buffer
	require.NoError(t, writeNDJSONEvaluations(&out, &errOut, evals))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		m, err := schema.DecodeRecord([]byte(line))
		require.NoError(t, err)
		assert.NoError(t, schema.ValidateRecord(m))
	}
	assert.Contains(t, lines[0], `"net_score":0.755`)
	assert.Contains(t, lines[0], `"license":1.0`)
	assert.Equal(t, "ERROR: Invalid record for URL https://github.com/acme/broken\n", errOut.String())
}

func TestWriteCSVEvaluations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVEvaluations(&buf, sampleEvaluations(), createFormatters(2, "")))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])

	widgets := rows[1]
	assert.Equal(t, "https://github.com/acme/widgets", widgets[0])
	assert.Equal(t, "CODE", widgets[2])
	assert.Equal(t, schema.PassLabel, widgets[3])
	assert.Equal(t, "0.76", widgets[4])
	assert.Equal(t, "12", widgets[5])
	assert.Equal(t, "0.20", widgets[10])
	assert.Equal(t, "0.80", widgets[13])
	assert.Equal(t, "", widgets[14])

	unknown := rows[2]
	assert.Equal(t, "", unknown[2])
	assert.Equal(t, schema.NoneLabel, unknown[3])
	assert.Equal(t, "", unknown[4])
	assert.Equal(t, "no context provider for url", unknown[len(unknown)-1])
}

func TestWriteEvaluationTable(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Width: 200, Workers: 4, HistoryBackend: schema.NoneBackend}

	var buf bytes.Buffer
	require.NoError(t, writeEvaluationTable(&buf, sampleEvaluations(), cfg, 1500*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "widgets")
	assert.Contains(t, out, "0.76")
	assert.Contains(t, out, "0.20/0.60/0.75/0.80")
	assert.Contains(t, out, schema.PassLabel)
	assert.Contains(t, out, schema.NoneLabel)
	assert.Contains(t, out, "Scored 2 URLs (passed: 1)")
	assert.Contains(t, out, "Evaluation completed in 1.5s with 4 workers. History backend: none")
}

func TestWriteEvaluationResults_OutputFile(t *testing.T) {
	for _, mode := range []schema.OutputMode{schema.TextOut, schema.JSONOut, schema.NDJSONOut, schema.CSVOut} {
		t.Run(string(mode), func(t *testing.T) {
			outFile := filepath.Join(t.TempDir(), "out")
			cfg := &contract.Config{Precision: 2, Width: 120, Output: mode, OutputFile: outFile}

			require.NoError(t, WriteEvaluationResults(sampleEvaluations(), cfg, time.Second))
			content, err := os.ReadFile(outFile)
			require.NoError(t, err)
			assert.Contains(t, string(content), "widgets")
		})
	}
}

func TestGetMaxTableNameWidth(t *testing.T) {
	assert.Equal(t, minNameWidth, GetMaxTableNameWidth(&contract.Config{Width: 80}))
	assert.Equal(t, 30, GetMaxTableNameWidth(&contract.Config{Width: fixedColumnWidth + 30}))
	assert.Equal(t, maxNameWidth, GetMaxTableNameWidth(&contract.Config{Width: 400}))
}

func TestSizeText(t *testing.T) {
	f := createFormatters(1, missingValue)
	assert.Equal(t, missingValue, sizeText(schema.SizeScore{}, f))
	assert.Equal(t, "0.5/-/-/1.0", sizeText(schema.SizeScore{RaspberryPi: schema.ScorePtr(0.5), AWSServer: schema.ScorePtr(1)}, f))
}

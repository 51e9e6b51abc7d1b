package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteEvaluationResults outputs the evaluations, dispatching based on the output format configured.
func WriteEvaluationResults(evals []schema.Evaluation, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONEvaluations(w, evals)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.NDJSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNDJSONEvaluations(w, os.Stderr, evals)
		}, "Wrote NDJSON"); err != nil {
			return fmt.Errorf("error writing NDJSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVEvaluations(w, evals, createFormatters(cfg.Precision, ""))
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationTable(w, evals, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeJSONEvaluations writes the records as one indented array.
func writeJSONEvaluations(w io.Writer, evals []schema.Evaluation) error {
	records := make([]schema.Record, len(evals))
	for i, ev := range evals {
		records[i] = ev.Record
	}
	return writeJSON(w, records)
}

// writeNDJSONEvaluations writes one record per line. Records that fail
// validation are skipped and reported on errW.
func writeNDJSONEvaluations(w, errW io.Writer, evals []schema.Evaluation) error {
	for _, ev := range evals {
		if err := ev.Record.Validate(); err != nil {
			_, _ = fmt.Fprintf(errW, "ERROR: Invalid record for URL %s\n", ev.Target.URL)
			continue
		}
		data, err := json.Marshal(ev.Record)
		if err != nil {
			return fmt.Errorf("failed to encode record for %s: %w", ev.Target.URL, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// csvHeader is the column order of CSV output.
var csvHeader = []string{
	"url", "name", "category", "label", "net_score", "net_score_latency",
	"ramp_up_time", "bus_factor", "performance_claims", "license",
	"size_raspberry_pi", "size_jetson_nano", "size_desktop_pc", "size_aws_server",
	"dataset_and_code_score", "dataset_quality", "code_quality", "warning",
}

// writeCSVEvaluations writes a header and one row per evaluation. Null values are empty cells.
func writeCSVEvaluations(w io.Writer, evals []schema.Evaluation, f formatters) error {
	return writeCSVWithHeader(w, csvHeader, func(csvWriter *csv.Writer) error {
		for _, ev := range evals {
			r := ev.Record
			row := []string{
				ev.Target.URL,
				r.Name,
				categoryText(r.Category, ""),
				schema.GetPlainLabel(ev.NetScoreBinary),
				f.score(r.NetScore),
				f.latency(r.NetScoreLatency),
				f.score(r.RampUpTime),
				f.score(r.BusFactor),
				f.score(r.PerformanceClaims),
				f.score(r.License),
			}
			for _, target := range schema.AllHardwareTargets {
				row = append(row, f.score(r.SizeScore.Get(target)))
			}
			row = append(row,
				f.score(r.DatasetAndCodeScore),
				f.score(r.DatasetQuality),
				f.score(r.CodeQuality),
				ev.Warning,
			)
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeEvaluationTable generates and writes the human-readable table.
func writeEvaluationTable(w io.Writer, evals []schema.Evaluation, cfg *contract.Config, duration time.Duration) error {
	f := createFormatters(cfg.Precision, missingValue)
	nameWidth := GetMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Category", "Net", "Label", "Ramp", "Bus", "Perf", "License", "Size", "Avail", "Data", "Code", "Latency"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	var passed int
	for _, ev := range evals {
		r := ev.Record
		label := schema.GetPlainLabel(ev.NetScoreBinary)
		if cfg.UseColors {
			label = contract.GetColorLabel(ev.NetScoreBinary)
		}
		if ev.NetScoreBinary != nil && *ev.NetScoreBinary == 1 {
			passed++
		}
		data = append(data, []string{
			contract.TruncateText(r.Name, nameWidth),
			categoryText(r.Category, missingValue),
			f.score(r.NetScore),
			label,
			f.score(r.RampUpTime),
			f.score(r.BusFactor),
			f.score(r.PerformanceClaims),
			f.score(r.License),
			sizeText(r.SizeScore, f),
			f.score(r.DatasetAndCodeScore),
			f.score(r.DatasetQuality),
			f.score(r.CodeQuality),
			f.latency(r.NetScoreLatency),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored %d URLs (passed: %d)\n", len(evals), passed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Evaluation completed in %v with %d workers. History backend: %s\n", duration, cfg.Workers, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// sizeText joins the per-target size scores in hardware order.
func sizeText(s schema.SizeScore, f formatters) string {
	if s == (schema.SizeScore{}) {
		return f.missing
	}
	parts := make([]string, len(schema.AllHardwareTargets))
	for i, target := range schema.AllHardwareTargets {
		parts[i] = f.score(s.Get(target))
	}
	return strings.Join(parts, "/")
}

func categoryText(c *schema.Category, missing string) string {
	if c == nil {
		return missing
	}
	return string(*c)
}

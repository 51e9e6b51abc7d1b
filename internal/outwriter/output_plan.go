package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// planEntry is the JSON shape of one operationalization with its resolved threshold.
type planEntry struct {
	engine.Operationalization
	Threshold float64 `json:"threshold"`
}

// planOutput is the JSON shape of the metrics command.
type planOutput struct {
	Metrics           []planEntry `json:"metrics"`
	NetScoreThreshold float64     `json:"netscore_threshold"`
	TotalWeight       float64     `json:"total_weight"`
}

// WritePlanResults outputs the plan, dispatching based on the output format configured.
func WritePlanResults(plan []engine.Operationalization, cfg *contract.Config) error {
	model := buildPlanOutput(plan, cfg.Thresholds)

	switch cfg.Output {
	case schema.JSONOut, schema.NDJSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVPlan(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePlanTable(w, model)
		}, "Wrote table")
	}
}

func buildPlanOutput(plan []engine.Operationalization, th engine.Thresholds) planOutput {
	if th == (engine.Thresholds{}) {
		th = engine.DefaultThresholds()
	}
	out := planOutput{
		Metrics:           make([]planEntry, len(plan)),
		NetScoreThreshold: th.NetScore,
	}
	for i, op := range plan {
		out.Metrics[i] = planEntry{Operationalization: op, Threshold: th.ForMetric(op.Params)}
		out.TotalWeight += op.Weight
	}
	return out
}

// formatNormParams renders norm params as sorted key=value pairs.
func formatNormParams(params map[string]float64) string {
	keys := slices.Sorted(maps.Keys(params))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(params[k], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func normalizationName(n engine.Normalization) string {
	if n == "" {
		return string(engine.Identity)
	}
	return string(n)
}

func writePlanTable(w io.Writer, model planOutput) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Weight", "Normalization", "Norm Params", "Greater Is Better", "Threshold"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, m := range model.Metrics {
		data = append(data, []string{
			m.MetricID,
			strconv.FormatFloat(m.Weight, 'f', 2, 64),
			normalizationName(m.Normalization),
			formatNormParams(m.NormParams),
			strconv.FormatBool(m.GreaterIsBetter),
			strconv.FormatFloat(m.Threshold, 'f', 2, 64),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total weight: %.2f. Net score threshold: %.2f\n", model.TotalWeight, model.NetScoreThreshold)
	return err
}

func writeCSVPlan(w io.Writer, model planOutput) error {
	header := []string{"metric_id", "weight", "normalization", "norm_params", "greater_is_better", "threshold"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, m := range model.Metrics {
			record := []string{
				m.MetricID,
				strconv.FormatFloat(m.Weight, 'g', -1, 64),
				normalizationName(m.Normalization),
				formatNormParams(m.NormParams),
				strconv.FormatBool(m.GreaterIsBetter),
				strconv.FormatFloat(m.Threshold, 'g', -1, 64),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

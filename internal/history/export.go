package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/internal/parquet"
)

// ExecuteHistoryExport exports every run and evaluation in store to
// <outputFile>.runs.parquet and <outputFile>.evaluations.parquet.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run history is disabled; set --history-backend to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total evaluations: %d\n", status.TableSizes[evaluationsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	evaluations, err := store.GetAllEvaluations()
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluations: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetEvaluations := parquet.ConvertEvaluationRecords(evaluations)
	evaluationsFile := outputFile + ".evaluations.parquet"
	if err := parquet.WriteEvaluationsParquet(parquetEvaluations, evaluationsFile); err != nil {
		return fmt.Errorf("failed to write evaluations: %w", err)
	}
	fmt.Printf("Exported %d evaluations to: %s\n", len(parquetEvaluations), evaluationsFile)

	return nil
}

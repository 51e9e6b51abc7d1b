package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
)

// missingValue is shown in tables for null scores and latencies.
const missingValue = "-"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// A confirmation goes to stderr when the output is not stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader creates a CSV writer, writes header and then the rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// formatters render optional record values at a fixed precision.
type formatters struct {
	// missing replaces null values
	missing string
	fmtFloat func(float64) string
}

// createFormatters creates the formatter used across the table and CSV writers.
func createFormatters(precision int, missing string) formatters {
	return formatters{
		missing: missing,
		fmtFloat: func(v float64) string {
			return strconv.FormatFloat(v, 'f', precision, 64)
		},
	}
}

func (f formatters) score(s *schema.Score) string {
	if s == nil {
		return f.missing
	}
	return f.fmtFloat(float64(*s))
}

func (f formatters) latency(ms *int64) string {
	if ms == nil {
		return f.missing
	}
	return strconv.FormatInt(*ms, 10)
}

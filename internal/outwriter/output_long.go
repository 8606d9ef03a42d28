package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/parquet"
	"github.com/jreiser/trendreport/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLongResults outputs the long-form behavior table, dispatching based on the output format configured.
func PrintLongResults(rows []schema.LongRow, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, fmtNullable := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForLong(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForLong(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForLong(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printLongTable(rows, cfg, fmtFloat, fmtNullable, duration); err != nil {
			return fmt.Errorf("error writing long table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForLong handles opening the file and calling the JSON writer.
func printJSONResultsForLong(rows []schema.LongRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, rows)
	}, "Wrote JSON behavior trends")
}

// printCSVResultsForLong handles opening the file and calling the CSV writer.
func printCSVResultsForLong(rows []schema.LongRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"day", "cohort", "behavior", "behavior_label", "value", "nobs"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range rows {
				record := []string{
					fmtFloat(row.Day),
					row.CohortLabel,
					string(row.Behavior),
					row.BehaviorLabel,
					csvNullable(row.Value, fmtFloat),
					strconv.FormatInt(row.NObs, 10),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV behavior trends")
}

// printParquetResultsForLong writes the long table as a Parquet file.
func printParquetResultsForLong(rows []schema.LongRow, cfg *contract.Config) error {
	if err := parquet.WriteLongBehaviors(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet behavior trends to %s\n", cfg.OutputFile)
	return nil
}

// printLongTable prints the long table in a five-column table.
func printLongTable(rows []schema.LongRow, cfg *contract.Config, fmtFloat func(float64) string, fmtNullable func(*float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Day", "Cohort", "Behavior", "Value", "N"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	maxLabelWidth := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range rows {
		label := contract.TruncateLabel(row.CohortLabel, maxLabelWidth)
		data = append(data, []string{
			fmtFloat(row.Day),
			colorizeCohortLabel(label, cfg.Color),
			row.BehaviorLabel,
			fmtNullable(row.Value),
			strconv.FormatInt(row.NObs, 10),
		})
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Report completed in %v with %d rows. Store backend: %s\n", duration, len(rows), cfg.StoreBackend)
	return nil
}

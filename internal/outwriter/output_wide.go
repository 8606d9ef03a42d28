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

// WideRecord is the serialized form of a wide summary row for CSV/JSON.
type WideRecord struct {
	Day                  float64  `json:"days_since_test"`
	Cohort               string   `json:"cohort"`
	Outcome              int8     `json:"outcome"`
	CohortLabel          string   `json:"cohort_label"`
	StayedHome           *float64 `json:"combined_stayed_home_NEW"`
	SociallyDistanced    *float64 `json:"combined_socially_distanced_NEW"`
	CanceledAppointments *float64 `json:"canceled_appointments_NEW"`
	MaskIndoors          *float64 `json:"wore_mask_indoors_NEW"`
	MaskOutdoors         *float64 `json:"wore_mask_outdoors_NEW"`
	MaskWearing          *float64 `json:"mask_wearing"`
	ContactMedian        *float64 `json:"estimate_people_contact_median"`
	NObs                 int64    `json:"nobs"`
}

// ToWideRecords converts labeled rows to their serialized form.
func ToWideRecords(rows []schema.LabeledRow) []WideRecord {
	records := make([]WideRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toWideRecord(row))
	}
	return records
}

// toWideRecord converts a labeled row to its serialized form.
func toWideRecord(row schema.LabeledRow) WideRecord {
	return WideRecord{
		Day:                  row.Key.Day,
		Cohort:               row.Key.Cohort,
		Outcome:              int8(row.Key.Outcome),
		CohortLabel:          row.CohortLabel,
		StayedHome:           row.Means[schema.BehaviorStayedHome],
		SociallyDistanced:    row.Means[schema.BehaviorSociallyDistanced],
		CanceledAppointments: row.Means[schema.BehaviorCanceledAppointments],
		MaskIndoors:          row.Means[schema.BehaviorMaskIndoors],
		MaskOutdoors:         row.Means[schema.BehaviorMaskOutdoors],
		MaskWearing:          row.Means[schema.BehaviorMaskWearing],
		ContactMedian:        row.ContactMedian,
		NObs:                 row.NObs,
	}
}

// PrintWideResults outputs the wide cohort summary, dispatching based on the output format configured.
func PrintWideResults(rows []schema.LabeledRow, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, fmtNullable := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForWide(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForWide(rows, cfg, fmtFloat, fmtNullable); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForWide(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printWideTable(rows, cfg, fmtFloat, fmtNullable, duration); err != nil {
			return fmt.Errorf("error writing wide table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForWide handles opening the file and calling the JSON writer.
func printJSONResultsForWide(rows []schema.LabeledRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, ToWideRecords(rows))
	}, "Wrote JSON cohort summary")
}

// printCSVResultsForWide handles opening the file and calling the CSV writer.
func printCSVResultsForWide(rows []schema.LabeledRow, cfg *contract.Config, fmtFloat func(float64) string, fmtNullable func(*float64) string) error {
	header := []string{
		"days_since_test", "cohort", "outcome", "cohort_label",
		string(schema.BehaviorStayedHome), string(schema.BehaviorSociallyDistanced),
		string(schema.BehaviorCanceledAppointments), string(schema.BehaviorMaskIndoors),
		string(schema.BehaviorMaskOutdoors), string(schema.BehaviorMaskWearing),
		"estimate_people_contact_median", "nobs",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range rows {
				r := toWideRecord(row)
				record := []string{
					fmtFloat(r.Day),
					r.Cohort,
					strconv.Itoa(int(r.Outcome)),
					r.CohortLabel,
					csvNullable(r.StayedHome, fmtFloat),
					csvNullable(r.SociallyDistanced, fmtFloat),
					csvNullable(r.CanceledAppointments, fmtFloat),
					csvNullable(r.MaskIndoors, fmtFloat),
					csvNullable(r.MaskOutdoors, fmtFloat),
					csvNullable(r.MaskWearing, fmtFloat),
					csvNullable(r.ContactMedian, fmtFloat),
					strconv.FormatInt(r.NObs, 10),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV cohort summary")
}

// csvNullable renders missing aggregates as empty CSV cells.
func csvNullable(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

// printParquetResultsForWide writes the wide summary as a Parquet file.
func printParquetResultsForWide(rows []schema.LabeledRow, cfg *contract.Config) error {
	stored := make([]schema.StoredCohortRow, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, schema.FlattenLabeledRow(0, row))
	}
	if err := parquet.WriteCohortSummaries(stored, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet cohort summary to %s\n", cfg.OutputFile)
	return nil
}

// printWideTable prints the wide summary in a human-readable table.
func printWideTable(rows []schema.LabeledRow, cfg *contract.Config, fmtFloat func(float64) string, fmtNullable func(*float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Day", "Cohort", "Home", "Distanced", "Canceled", "Mask In", "Mask Out", "Mask", "Contact Med", "N"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	maxLabelWidth := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range rows {
		r := toWideRecord(row)
		label := contract.TruncateLabel(r.CohortLabel, maxLabelWidth)
		data = append(data, []string{
			fmtFloat(r.Day),
			colorizeCohortLabel(label, cfg.Color),
			fmtNullable(r.StayedHome),
			fmtNullable(r.SociallyDistanced),
			fmtNullable(r.CanceledAppointments),
			fmtNullable(r.MaskIndoors),
			fmtNullable(r.MaskOutdoors),
			fmtNullable(r.MaskWearing),
			fmtNullable(r.ContactMedian),
			strconv.FormatInt(r.NObs, 10),
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

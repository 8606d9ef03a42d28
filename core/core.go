// Package core has core logic for recoding, merging and collapsing
// check-in populations into cohort behavior trends.
package core

import (
	"fmt"
	"time"

	"github.com/jreiser/trendreport/core/cohort"
	"github.com/jreiser/trendreport/core/recode"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/outwriter"
	"github.com/jreiser/trendreport/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(cfg *contract.Config, source contract.RecordSource, store contract.ResultsStore) error

// mergeFunc combines the recoded tested population with one comparison population.
type mergeFunc func(tested, other []schema.RecodedRecord) []schema.RecodedRecord

// ExecuteUntestedReport runs the tested-vs-untested comparison and prints
// results using the configured output format. It serves as the main entry
// point for the 'untested' mode.
func ExecuteUntestedReport(cfg *contract.Config, source contract.RecordSource, store contract.ResultsStore) error {
	return runReportCore(cfg, source, store, schema.TestedVsUntestedScheme, cfg.UntestedPath, cohort.MergeTestedUntested)
}

// ExecutePredictedReport runs the tested-vs-predicted comparison and prints
// results using the configured output format. It serves as the main entry
// point for the 'predicted' mode.
func ExecutePredictedReport(cfg *contract.Config, source contract.RecordSource, store contract.ResultsStore) error {
	return runReportCore(cfg, source, store, schema.TestedVsPredictedScheme, cfg.PredictedPath, cohort.MergeTestedPredicted)
}

// GetUntestedCohortRows computes the tested-vs-untested summary without
// writing output or tracking the run. Used by the MCP server.
func GetUntestedCohortRows(cfg *contract.Config, source contract.RecordSource) ([]schema.LabeledRow, error) {
	return computeCohortRows(cfg, source, schema.TestedVsUntestedScheme, cfg.UntestedPath, cohort.MergeTestedUntested)
}

// GetPredictedCohortRows computes the tested-vs-predicted summary without
// writing output or tracking the run. Used by the MCP server.
func GetPredictedCohortRows(cfg *contract.Config, source contract.RecordSource) ([]schema.LabeledRow, error) {
	return computeCohortRows(cfg, source, schema.TestedVsPredictedScheme, cfg.PredictedPath, cohort.MergeTestedPredicted)
}

// computeCohortRows is the shared pipeline behind both report modes:
// load, recode, merge, collapse and label.
func computeCohortRows(
	cfg *contract.Config,
	source contract.RecordSource,
	scheme schema.LabelScheme,
	otherPath string,
	merge mergeFunc,
) ([]schema.LabeledRow, error) {
	// --- 1. Load populations ---
	testedRaw, err := source.ReadRawRecords(cfg.TestedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tested snapshot: %w", err)
	}
	otherRaw, err := source.ReadRawRecords(otherPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison snapshot: %w", err)
	}

	// --- 2. Recode both populations ---
	tested, err := recode.Apply(testedRaw, cfg.FieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to recode tested population: %w", err)
	}
	other, err := recode.Apply(otherRaw, cfg.FieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to recode comparison population: %w", err)
	}

	// --- 3. Merge, collapse and label ---
	merged := merge(tested, other)
	collapsed := cohort.Collapse(merged)
	labeled, err := cohort.AssignLabels(collapsed, scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to assign cohort labels: %w", err)
	}
	return labeled, nil
}

// runReportCore wraps the compute pipeline with run tracking and output.
func runReportCore(
	cfg *contract.Config,
	source contract.RecordSource,
	store contract.ResultsStore,
	scheme schema.LabelScheme,
	otherPath string,
	merge mergeFunc,
) error {
	start := time.Now()

	// --- 1. Begin run tracking ---
	var runID int64
	if store != nil {
		var err error
		runID, err = store.BeginRun(scheme, start, runConfigParams(cfg))
		if err != nil {
			// Tracking failures never block the report itself
			contract.LogWarn("Failed to begin run tracking", err)
			store = nil
		}
	}

	// --- 2. Run the pipeline ---
	labeled, err := computeCohortRows(cfg, source, scheme, otherPath, merge)
	if err != nil {
		return err
	}

	// --- 3. Record results ---
	if store != nil {
		if err := store.RecordCohortRows(runID, labeled); err != nil {
			contract.LogWarn("Failed to record cohort rows", err)
		}
		if err := store.EndRun(runID, time.Now(), len(labeled)); err != nil {
			contract.LogWarn("Failed to end run tracking", err)
		}
	}

	// --- 4. Write output ---
	duration := time.Since(start)
	writer := outwriter.NewOutWriter()
	if cfg.Long {
		long := cohort.ToLong(labeled)
		long, err = cohort.SmoothLong(long, cfg.SmoothWindow)
		if err != nil {
			return fmt.Errorf("failed to smooth behavior trends: %w", err)
		}
		return writer.WriteLong(long, cfg, duration)
	}
	return writer.WriteWide(labeled, cfg, duration)
}

// runConfigParams captures the configuration that shaped a run, for
// auditability of stored results.
func runConfigParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"data_dir":      cfg.DataDir,
		"output":        string(cfg.Output),
		"long":          cfg.Long,
		"precision":     cfg.Precision,
		"smooth_window": cfg.SmoothWindow,
	}
}

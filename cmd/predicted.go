package cmd

import (
	"github.com/jreiser/trendreport/core"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/iostore"
	"github.com/jreiser/trendreport/internal/parquet"
	"github.com/spf13/cobra"
)

// predictedCmd compares tested and predicted-positive check-in populations.
var predictedCmd = &cobra.Command{
	Use:   "predicted [data-dir]",
	Short: "Summarize daily behavior trends for tested vs. predicted cohorts",
	Long: `Compare the daily self-reported behaviors of individuals who took a COVID
test against individuals flagged by the symptom prediction model.

Predicted individuals who later appear in the tested population are excluded
before the collapse, so each session contributes to exactly one cohort.
Cohorts split by outcome on both sides: Tested-Negative, Tested-Positive,
Predicted-Negative and Predicted-Positive.

Examples:
  # Wide summary table from snapshots in ./data
  trendreport predicted ./data

  # Long-form table with a 7-day centered moving average
  trendreport predicted ./data --long --smooth-window 7

  # JSON for downstream tooling
  trendreport predicted ./data --output json --output-file predicted.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePredictedReport(cfg, parquet.FileSource{}, iostore.Manager.GetResultsStore()); err != nil {
			contract.LogFatal("Cannot run predicted report", err)
		}
	},
}

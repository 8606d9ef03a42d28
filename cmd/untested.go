package cmd

import (
	"github.com/jreiser/trendreport/core"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/iostore"
	"github.com/jreiser/trendreport/internal/parquet"
	"github.com/spf13/cobra"
)

// untestedCmd compares tested and untested check-in populations.
var untestedCmd = &cobra.Command{
	Use:   "untested [data-dir]",
	Short: "Summarize daily behavior trends for tested vs. untested cohorts",
	Long: `Compare the daily self-reported behaviors of individuals who took a COVID
test against individuals who never tested.

The pipeline recodes raw survey answers into binary indicators, concatenates
both populations, and collapses check-ins into one row per (day since test,
cohort, outcome) with indicator means, the median contact count and the
group size. Tested cohorts split by outcome: Tested-Negative and
Tested-Positive; untested check-ins stay a single Untested cohort anchored
at the matched test date.

Examples:
  # Wide summary table from snapshots in ./data
  trendreport untested ./data

  # Long-form table with a 7-day centered moving average
  trendreport untested ./data --long --smooth-window 7

  # Export the summary for notebooks
  trendreport untested ./data --output parquet --output-file untested.parquet

  # Track runs in SQLite
  trendreport untested ./data --store-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteUntestedReport(cfg, parquet.FileSource{}, iostore.Manager.GetResultsStore()); err != nil {
			contract.LogFatal("Cannot run untested report", err)
		}
	},
}

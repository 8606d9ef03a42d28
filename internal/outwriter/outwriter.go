// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteWide prints the wide cohort summary table using the configured output format.
func (ow *OutWriter) WriteWide(rows []schema.LabeledRow, cfg *contract.Config, duration time.Duration) error {
	return PrintWideResults(rows, cfg, duration)
}

// WriteLong prints the long-form behavior table using the configured output format.
func (ow *OutWriter) WriteLong(rows []schema.LongRow, cfg *contract.Config, duration time.Duration) error {
	return PrintLongResults(rows, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for cohort labels in
// table output based on terminal width and table configuration.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with table formatting.
	// Wide tables carry six behavior means plus day, contact median and nobs.
	baseWidth := 90

	available := termWidth - baseWidth
	if available < 10 {
		// Minimum reasonable label width
		return 10
	}
	if available > 30 {
		// Cohort labels never need more than this
		return 30
	}
	return available
}

// Cohort label colors keyed by outcome suffix. Untested and predicted
// cohorts read as informational rather than alarming.
var (
	positiveColor  = color.New(color.FgRed, color.Bold)
	negativeColor  = color.New(color.FgGreen)
	predictedColor = color.New(color.FgYellow)
	untestedColor  = color.New(color.FgHiBlack)
)

// colorizeCohortLabel applies the cohort's terminal color when enabled.
func colorizeCohortLabel(label string, enabled bool) string {
	if !enabled {
		return label
	}
	switch {
	case label == "Untested":
		return untestedColor.Sprint(label)
	case label == "Predicted-Negative" || label == "Predicted-Positive":
		return predictedColor.Sprint(label)
	case label == "Tested-Positive":
		return positiveColor.Sprint(label)
	case label == "Tested-Negative":
		return negativeColor.Sprint(label)
	default:
		return label
	}
}

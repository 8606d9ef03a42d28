// main holds the entry logic for the trendreport CLI.
package main

import (
	"os"

	"github.com/jreiser/trendreport/cmd"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/iostore"
)

func main() {
	err := cmd.Execute()

	// Shutdown in reverse order of initialization
	iostore.CloseStore()
	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

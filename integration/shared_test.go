//go:build database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jreiser/trendreport/internal/parquet"
	"github.com/jreiser/trendreport/schema"
)

var (
	// sharedBinaryPath holds the path to a shared trendreport binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getTrendreportBinary returns the path to the trendreport binary, building it once if needed.
func getTrendreportBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "trendreport-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "trendreport")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build trendreport: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeSnapshotFixtures writes a small set of tested/untested/predicted
// snapshots into dir so report commands have data to summarize.
func writeSnapshotFixtures(t *testing.T, dir string) {
	t.Helper()

	strPtr := func(s string) *string { return &s }
	int32Ptr := func(v int32) *int32 { return &v }

	tested := []schema.RawRecord{
		{SessionID: "s1", TimeSinceTest: 24 * time.Hour, TestedPredicted: "Tested", Positive: int32Ptr(1), CombinedStayedHome: strPtr("True")},
		{SessionID: "s2", TimeSinceTest: 24 * time.Hour, TestedPredicted: "Tested", Positive: int32Ptr(0), CombinedStayedHome: strPtr("False")},
		{SessionID: "s2", TimeSinceTest: 48 * time.Hour, TestedPredicted: "Tested", Positive: int32Ptr(0), WoreMaskIndoors: strPtr("Always")},
	}
	untested := []schema.RawRecord{
		{SessionID: "s3", TimeSinceTest: 24 * time.Hour, TestedPredicted: "Untested", CombinedStayedHome: strPtr("True")},
	}
	predicted := []schema.RawRecord{
		{SessionID: "s1", TimeSinceTest: 24 * time.Hour, TestedPredicted: "Predicted", Positive: int32Ptr(1)},
		{SessionID: "s4", TimeSinceTest: 24 * time.Hour, TestedPredicted: "Predicted", Positive: int32Ptr(0)},
	}

	for name, records := range map[string][]schema.RawRecord{
		"tested.parquet":    tested,
		"untested.parquet":  untested,
		"predicted.parquet": predicted,
	} {
		if err := parquet.WriteRawRecords(records, filepath.Join(dir, name)); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
}

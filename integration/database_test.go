//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTrendreportWithMySQL tests the trendreport CLI with a MySQL results store.
func TestTrendreportWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "trendreport",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/trendreport?parseTime=true", host, port.Port())
	runReportSuite(t, "mysql", connStr)
}

// TestTrendreportWithPostgres tests the trendreport CLI with a PostgreSQL results store.
func TestTrendreportWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runReportSuite(t, "postgres", connStr)
}

// runReportSuite exercises both report modes and the store subcommands
// against one database backend.
func runReportSuite(t *testing.T, backend, connStr string) {
	_ = os.Setenv("TRENDREPORT_STORE_BACKEND", backend)
	_ = os.Setenv("TRENDREPORT_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TRENDREPORT_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("TRENDREPORT_STORE_DB_CONNECT") }()

	dataDir := t.TempDir()
	writeSnapshotFixtures(t, dataDir)

	// Migrate the fresh database to the latest schema version
	err := runTrendreportCommand(t, "store", "migrate")
	require.NoError(t, err)

	// Run both report modes against fixture snapshots
	err = runTrendreportCommand(t, "untested", dataDir)
	require.NoError(t, err)

	err = runTrendreportCommand(t, "predicted", dataDir, "--long", "--smooth-window", "3")
	require.NoError(t, err)

	// Run store status
	err = runTrendreportCommand(t, "store", "status")
	require.NoError(t, err)

	// Run store clear
	err = runTrendreportCommand(t, "store", "clear")
	require.NoError(t, err)

	// Roll the schema back to the initial state and forward again
	err = runTrendreportCommand(t, "store", "migrate", "--target-version", "0")
	require.NoError(t, err)
	err = runTrendreportCommand(t, "store", "migrate")
	require.NoError(t, err)
}

func runTrendreportCommand(t *testing.T, args ...string) error {
	binaryPath := getTrendreportBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

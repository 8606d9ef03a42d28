// Package iostore persists report runs and collapsed cohort rows to a
// relational results store for downstream dashboards.
package iostore

import (
	"fmt"
	"time"

	"github.com/jreiser/trendreport/schema"
)

// Table names for report tracking.
const (
	reportRunsTable = "trend_report_runs"
	cohortRowsTable = "trend_cohort_rows"
)

// quoteTableName quotes a table identifier for the given backend.
func quoteTableName(name string, backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	case schema.PostgreSQLBackend:
		return `"` + name + `"`
	default:
		return name
	}
}

// formatTime converts a time.Time to the storage form for the backend.
// SQLite stores timestamps as RFC3339Nano text.
func formatTime(t time.Time, backend schema.StoreBackend) any {
	if backend == schema.SQLiteBackend {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

// placeholders returns n positional placeholders for the backend.
func placeholders(n int, backend schema.StoreBackend) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if backend == schema.PostgreSQLBackend {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}

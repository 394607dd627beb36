// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections for
// production and SQLite connections for tests and single-binary deployments.
//
// # Connect
//
// The Connect function establishes a connection based on the configured
// driver. MySQL connections get pooled sql.DB settings and a ping with
// timeout; SQLite connections open directly (":memory:" is supported).
//
// # Schema Inspection
//
// The inspector powers the `db inspect` CLI command: it retrieves column
// definitions (dialect-aware) and row counts for the quizzes table, which is
// useful when diagnosing a deployment whose sync behaves unexpectedly.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	stats, err := database.InspectTable(db, "quizzes")
package database

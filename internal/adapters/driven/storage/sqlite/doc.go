// Package sqlite provides the local SQLite implementation of the storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. One database file backs every store:
//
//   - PropertyStore: one JSON document per property
//   - SubmissionStore: append-only contact submissions
//   - BlobStore: locally authored asset bytes
//   - KeyValueStore: site-wide values
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/ directory.
// Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.listing-studio/data/studio.db
//
// # Thread Safety
//
// All operations are thread-safe. SaveAll runs in a single transaction.
package sqlite

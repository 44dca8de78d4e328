// Package sqlite provides a unified SQLite-based implementation of the record stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - CampaignStore: Campaign status and counts
//   - DeliverableStore: Deliverable lifecycle, prompts and scores
//   - ArtifactStore: Generated files and their grades
//   - AuditLog: Append-only prompt mutation history
//   - ProfileStore: Per-brand profile snapshots
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.brandloop/data/brandloop.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Each deliverable save is a single statement, so readers
// never observe a half-written record.
package sqlite

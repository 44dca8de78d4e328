// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Collaborators
//
// Long-running external work the orchestrator delegates and treats as opaque:
//
//   - Generator: Produces an image or video for a prompt
//   - Scorer: Grades an artifact against the brand's canonical references
//   - MemoryIngestor: Writes approved artifacts into the brand's campaign partitions
//
// # Record Stores
//
// Whole-record persistence keyed by id:
//
//   - CampaignStore, DeliverableStore, ArtifactStore: Durable records
//   - AuditLog: Append-only prompt mutation history
//   - ProfileStore: Brand statistics snapshots
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package domain defines the core business entities for brandloop.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Campaign: A batch of creative work for one brand
//   - Deliverable: One image or video tracked through the feedback loop
//   - Artifact: A generated file and its latest grade
//   - ScoreResult: The quality gate outcome for one scoring call
//   - RejectionCategory: A reason an output was rejected, with prompt guidance
//   - BrandProfile: Aggregate statistics and drift baseline for a brand
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

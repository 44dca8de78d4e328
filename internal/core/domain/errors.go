package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Lifecycle Errors.

	// ErrInvalidTransition indicates a deliverable status change the state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownDecision indicates a review decision other than approve, reject or changes.
	ErrUnknownDecision = errors.New("unknown review decision")

	// ErrRetryBudgetExhausted indicates a deliverable has used every retry its campaign allows.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

	// ErrAlreadyPromoted indicates the campaign's approved work was already committed to brand memory.
	ErrAlreadyPromoted = errors.New("campaign already promoted")

	// Collaborator Errors.

	// ErrGenerationFailed indicates the generation collaborator did not produce an artifact.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrScoringFailed indicates the scoring collaborator could not grade an artifact.
	ErrScoringFailed = errors.New("scoring failed")

	// ErrNoArtifact indicates there was nothing to score or ingest.
	ErrNoArtifact = errors.New("no artifact")

	// ErrUnknownModel indicates a model identifier no generator is registered for.
	ErrUnknownModel = errors.New("unknown model")

	// Partition Errors.

	// ErrCoreWriteForbidden indicates an attempt to write generated content into
	// canonical reference storage.
	ErrCoreWriteForbidden = errors.New("writes to core partitions are forbidden")

	// ErrGradingPartition indicates scoring was pointed at a partition holding generated content.
	ErrGradingPartition = errors.New("grading must read core partitions only")

	// ErrInvalidPartition indicates a partition name that does not follow the naming contract.
	ErrInvalidPartition = errors.New("invalid partition name")
)

// Package ai provides factory functions for creating collaborator adapters.
package ai

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/command"
	"github.com/custodia-labs/brandloop/internal/adapters/driven/gemini"
	"github.com/custodia-labs/brandloop/internal/adapters/driven/generation"
	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Per-call timeouts for command-backed collaborators.
const (
	generationTimeout = 10 * time.Minute
	scoringTimeout    = 2 * time.Minute
	ingestTimeout     = 2 * time.Minute
)

// geminiModels are the model ids served by the Gemini generator.
var geminiModels = []string{"nano"}

// InitResult contains the result of collaborator initialisation.
type InitResult struct {
	Generator driven.Generator
	Scorer    driven.Scorer
	Ingestor  driven.MemoryIngestor
	Warnings  []string // Non-fatal issues, such as a missing optional collaborator.
}

// Ready reports whether a campaign can run with these collaborators.
func (r *InitResult) Ready() bool {
	return r.Generator != nil && r.Scorer != nil
}

// CreateCollaborators builds every collaborator the settings describe.
// Missing collaborators are reported as warnings; broken ones as errors.
func CreateCollaborators(ctx context.Context, settings *domain.CollaboratorSettings) (*InitResult, error) {
	result := &InitResult{}
	if settings == nil {
		result.Warnings = append(result.Warnings, "no collaborators configured")
		return result, nil
	}

	gen, err := CreateGenerator(ctx, settings)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		result.Warnings = append(result.Warnings,
			"no generator configured: set generation.command or generation.gemini_api_key")
	} else {
		result.Generator = gen
	}

	scorer, err := CreateScorer(settings)
	if err != nil {
		return nil, err
	}
	if scorer == nil {
		result.Warnings = append(result.Warnings, "no scorer configured: set scoring.command")
	} else {
		result.Scorer = scorer
	}

	ingestor, err := CreateIngestor(settings)
	if err != nil {
		return nil, err
	}
	if ingestor == nil {
		result.Warnings = append(result.Warnings,
			"no ingestor configured: approved work will not reach brand memory")
	} else {
		result.Ingestor = ingestor
	}

	return result, nil
}

// CreateGenerator creates a router over the configured generators.
// Returns nil if neither a command nor a Gemini key is configured.
func CreateGenerator(ctx context.Context, settings *domain.CollaboratorSettings) (driven.Generator, error) {
	var fallback driven.Generator
	if len(settings.GenerationCommand) > 0 {
		runner, err := newRunner(settings.GenerationCommand, generationTimeout)
		if err != nil {
			return nil, fmt.Errorf("generation command: %w", err)
		}
		fallback = command.NewGenerator(runner, settings.GenerationOutputDir)
	}

	router := generation.NewRouter(fallback)
	if settings.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:    settings.GeminiAPIKey,
			Model:     settings.GeminiModel,
			OutputDir: settings.GenerationOutputDir,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini generator: %w", err)
		}
		for _, m := range geminiModels {
			router.Register(m, g)
		}
	}

	if fallback == nil && len(router.Models()) == 0 {
		return nil, nil
	}
	return router, nil
}

// CreateScorer creates the command-backed scorer.
// Returns nil if no scoring command is configured.
func CreateScorer(settings *domain.CollaboratorSettings) (driven.Scorer, error) {
	if len(settings.ScoringCommand) == 0 {
		return nil, nil
	}
	runner, err := newRunner(settings.ScoringCommand, scoringTimeout)
	if err != nil {
		return nil, fmt.Errorf("scoring command: %w", err)
	}
	return command.NewScorer(runner), nil
}

// CreateIngestor creates the command-backed memory ingestor.
// Returns nil if no ingest command is configured.
func CreateIngestor(settings *domain.CollaboratorSettings) (driven.MemoryIngestor, error) {
	if len(settings.IngestCommand) == 0 {
		return nil, nil
	}
	runner, err := newRunner(settings.IngestCommand, ingestTimeout)
	if err != nil {
		return nil, fmt.Errorf("ingest command: %w", err)
	}
	return command.NewIngestor(runner), nil
}

// newRunner validates that the executable resolves before building a runner.
func newRunner(argv []string, timeout time.Duration) (*command.Runner, error) {
	runner, err := command.NewRunner(argv, timeout)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return runner, nil
}

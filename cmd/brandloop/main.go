// Command brandloop runs brand-consistent asset campaigns through a
// generate, score and review feedback loop.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/ai"
	"github.com/custodia-labs/brandloop/internal/adapters/driven/config/file"
	"github.com/custodia-labs/brandloop/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/brandloop/internal/adapters/driving/cli"
	"github.com/custodia-labs/brandloop/internal/core/services"
	"github.com/custodia-labs/brandloop/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, bootstrap); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters into core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	log := logger.Named("bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.DataDir
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	log.Debug("store opened", zap.String("path", store.Path()))

	overrides, err := file.LoadTaxonomyOverrides(settings.TaxonomyOverridesFile)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("loading taxonomy overrides: %w", err)
	}
	taxonomy := services.NewRejectionTaxonomy(overrides)
	mutator := services.NewPromptMutator(taxonomy)
	gate := services.NewQualityGate(settings.Gate)

	collaborators, err := ai.CreateCollaborators(ctx, &settings.Collaborators)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("creating collaborators: %w", err)
	}
	for _, w := range collaborators.Warnings {
		log.Warn(w)
	}

	promoter := services.NewDNAPromoter(
		store.ArtifactStore(),
		store.ProfileStore(),
		collaborators.Ingestor,
		settings.Drift,
	)

	s := &cli.Services{
		Campaigns: services.NewCampaignService(
			store.CampaignStore(),
			store.DeliverableStore(),
			store.AuditLog(),
		),
		Promotion: promoter,
		Taxonomy:  taxonomy,
		Prompts:   mutator,
		Settings:  settingsService,
	}

	factory := services.NewOrchestratorFactory(
		store.CampaignStore(),
		store.DeliverableStore(),
		store.ArtifactStore(),
		store.AuditLog(),
		collaborators.Generator,
		collaborators.Scorer,
		promoter,
		mutator,
		gate,
		settings.Pipeline,
	)
	if err := factory.Validate(); err != nil {
		log.Debug("orchestration disabled", zap.Error(err))
	} else {
		s.Orchestrators = factory
	}

	return s, func() error {
		if err := store.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			return fmt.Errorf("closing store: %w", err)
		}
		return nil
	}, nil
}

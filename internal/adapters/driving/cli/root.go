// Package cli provides the brandloop command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
	"github.com/custodia-labs/brandloop/internal/logger"
)

// skipBootstrap marks commands that run without core services.
const skipBootstrap = "skip-bootstrap"

// Options carries global flag values to the composition root.
type Options struct {
	ConfigDir string
	DataDir   string
	Verbose   bool
}

// Services are the core services commands call.
type Services struct {
	Campaigns     driving.CampaignService
	Orchestrators driving.OrchestratorFactory
	Promotion     driving.PromotionService
	Taxonomy      driving.TaxonomyService
	Prompts       driving.PromptService
	Settings      driving.SettingsService
}

// BootstrapFunc wires services for the given options.
// The returned cleanup runs after the command finishes.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	version = "dev"

	opts      Options
	bootstrap BootstrapFunc
	cleanup   func() error

	campaignService  driving.CampaignService
	orchestrators    driving.OrchestratorFactory
	promotionService driving.PromotionService
	taxonomyService  driving.TaxonomyService
	promptService    driving.PromptService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "brandloop",
	Short: "Brand-consistent asset generation with a feedback loop",
	Long: `brandloop drives campaigns of creative deliverables through generation,
brand scoring and human review. Rejected work is retried with a rewritten
prompt until it passes or its retry budget runs out. Approved work is
promoted into the brand's long-term memory.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		defer logger.Sync()
		if cleanup == nil {
			return nil
		}
		err := cleanup()
		cleanup = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "config directory (default ~/.brandloop)")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (default ~/.brandloop/data)")
}

// Execute runs the root command.
func Execute(ctx context.Context, v string, boot BootstrapFunc) error {
	if v != "" {
		version = v
	}
	bootstrap = boot
	return rootCmd.ExecuteContext(ctx)
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	campaignService = s.Campaigns
	orchestrators = s.Orchestrators
	promotionService = s.Promotion
	taxonomyService = s.Taxonomy
	promptService = s.Prompts
	settingsService = s.Settings
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if bootstrap == nil || cmd.Annotations[skipBootstrap] != "" {
		return nil
	}
	s, closer, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	SetServices(s)
	cleanup = closer
	return nil
}

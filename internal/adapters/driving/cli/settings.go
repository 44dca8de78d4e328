package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure pipeline tuning, quality thresholds and collaborators.

Collaborator commands are edited in config.toml. Use subcommands for the
values that can be changed from the command line.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsPipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Set pipeline tuning",
	Long: `Set retry budget, poll interval and batch concurrency.
Only the flags given are changed.`,
	RunE: runSettingsPipeline,
}

var settingsGeminiCmd = &cobra.Command{
	Use:   "gemini",
	Short: "Set the Gemini API key",
	Long:  `Prompt for the Gemini API key used by the built-in image generator.`,
	RunE:  runSettingsGemini,
}

func init() {
	settingsPipelineCmd.Flags().Int("max-retries", -1, "default retry budget per deliverable")
	settingsPipelineCmd.Flags().Duration("poll-interval", -1, "pause between loop iterations")
	settingsPipelineCmd.Flags().Int("concurrency", 0, "generate/score calls in flight per batch")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPipelineCmd)
	settingsCmd.AddCommand(settingsGeminiCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Max retries: %d\n", settings.Pipeline.MaxRetries)
	cmd.Printf("  Poll interval: %s\n", settings.Pipeline.PollInterval)
	cmd.Printf("  Batch concurrency: %d\n", settings.Pipeline.BatchConcurrency)
	cmd.Println()

	cmd.Println("[Quality Gate]")
	cmd.Printf("  Auto-pass threshold: %.2f\n", settings.Gate.AutoPassThreshold)
	cmd.Printf("  HITL threshold: %.2f\n", settings.Gate.HITLThreshold)
	cmd.Printf("  Drift threshold: %.2f\n", settings.Drift.Threshold)
	cmd.Println()

	c := settings.Collaborators
	cmd.Println("[Collaborators]")
	cmd.Printf("  Generation command: %s\n", orNotSet(strings.Join(c.GenerationCommand, " ")))
	cmd.Printf("  Output dir: %s\n", orNotSet(c.GenerationOutputDir))
	cmd.Printf("  Gemini model: %s\n", c.GeminiModel)
	if c.GeminiAPIKey != "" {
		cmd.Printf("  Gemini API key: %s\n", maskAPIKey(c.GeminiAPIKey))
	} else {
		cmd.Printf("  Gemini API key: (not set)\n")
	}
	cmd.Printf("  Scoring command: %s\n", orNotSet(strings.Join(c.ScoringCommand, " ")))
	cmd.Printf("  Ingest command: %s\n", orNotSet(strings.Join(c.IngestCommand, " ")))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir: %s\n", orNotSet(settings.DataDir))
	cmd.Printf("  Taxonomy overrides: %s\n", orNotSet(settings.TaxonomyOverridesFile))

	return nil
}

func runSettingsPipeline(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	pipeline := settings.Pipeline

	flags := cmd.Flags()
	if flags.Changed("max-retries") {
		if pipeline.MaxRetries, err = flags.GetInt("max-retries"); err != nil {
			return err
		}
	}
	if flags.Changed("poll-interval") {
		if pipeline.PollInterval, err = flags.GetDuration("poll-interval"); err != nil {
			return err
		}
	}
	if flags.Changed("concurrency") {
		if pipeline.BatchConcurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}

	if err := settingsService.SetPipeline(pipeline); err != nil {
		return fmt.Errorf("failed to save pipeline settings: %w", err)
	}

	cmd.Printf("Pipeline settings saved: max retries %d, poll interval %s, concurrency %d\n",
		pipeline.MaxRetries, pipeline.PollInterval, pipeline.BatchConcurrency)
	return nil
}

func runSettingsGemini(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Enter Gemini API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key is required")
	}

	if err := settingsService.SetGeminiAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Printf("Gemini API key saved: %s\n", maskAPIKey(key))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

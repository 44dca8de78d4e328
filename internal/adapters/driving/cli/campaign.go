package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brandloop/internal/adapters/driven/config/file"
	"github.com/custodia-labs/brandloop/internal/core/domain"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage and run campaigns",
	Long:  `Import campaign manifests, run the feedback loop and inspect progress.`,
}

var campaignImportCmd = &cobra.Command{
	Use:   "import <manifest.yaml>",
	Short: "Create a campaign from a manifest",
	Long: `Create a campaign and its pending deliverables from a YAML manifest.

Example manifest:
  id: spring-24
  brand_id: jenni_kayne
  name: Spring Linen
  max_retries: 3
  deliverables:
    - description: Hero shot
      ai_model: nano
      prompt: Model in linen dress on a sunlit porch`,
	Args: cobra.ExactArgs(1),
	RunE: runCampaignImport,
}

var campaignRunCmd = &cobra.Command{
	Use:   "run <campaign-id>",
	Short: "Run the generate, score and retry loop",
	Long: `Run the feedback loop until every deliverable is approved, failed or
waiting for human review. Running again resumes where the last run stopped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCampaignRun,
}

var campaignStatusCmd = &cobra.Command{
	Use:   "status <campaign-id>",
	Short: "Show a campaign and its deliverables",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignStatus,
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	RunE:  runCampaignList,
}

func init() {
	campaignCmd.AddCommand(campaignImportCmd)
	campaignCmd.AddCommand(campaignRunCmd)
	campaignCmd.AddCommand(campaignStatusCmd)
	campaignCmd.AddCommand(campaignListCmd)
	rootCmd.AddCommand(campaignCmd)
}

func runCampaignImport(cmd *cobra.Command, args []string) error {
	if campaignService == nil {
		return errors.New("campaign service not configured")
	}

	manifest, err := file.LoadManifest(args[0])
	if err != nil {
		return err
	}
	campaign, deliverables := manifest.Build()

	if err := campaignService.Import(cmd.Context(), campaign, deliverables); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported campaign %s (%s) with %d deliverables.\n", campaign.ID, campaign.BrandID, len(deliverables))
	return nil
}

func runCampaignRun(cmd *cobra.Command, args []string) error {
	if orchestrators == nil {
		return errors.New("orchestrator not configured")
	}

	campaignID := args[0]
	cmd.Printf("Running campaign %s...\n", campaignID)

	summary, err := orchestrators.ForCampaign(campaignID).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	cmd.Printf("Campaign %s: %s after %d iterations\n", summary.CampaignID, summary.Status, summary.Iterations)
	cmd.Printf("  approved: %d  failed: %d  awaiting review: %d  total: %d\n",
		summary.Approved, summary.Failed, summary.HITL, summary.Total)
	if summary.Promoted {
		cmd.Println("  approved work promoted to brand memory")
	}
	return nil
}

func runCampaignStatus(cmd *cobra.Command, args []string) error {
	if campaignService == nil {
		return errors.New("campaign service not configured")
	}

	detail, err := campaignService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("campaign not found: %s", args[0])
		}
		return err
	}

	c := detail.Campaign
	cmd.Printf("Campaign %s (%s) %s\n", c.ID, c.BrandID, c.Name)
	cmd.Printf("  status: %s  retry budget: %d\n", c.Status, c.RetryBudget())
	cmd.Printf("  approved: %d  failed: %d  awaiting review: %d  total: %d\n",
		detail.Counts.Approved, detail.Counts.Failed, detail.Counts.HITL, detail.Counts.Total)
	if c.Promoted() {
		cmd.Printf("  promoted: %s\n", c.PromotedAt.Format("2006-01-02 15:04:05"))
	}

	if len(detail.Deliverables) == 0 {
		return nil
	}
	cmd.Println()
	for i := range detail.Deliverables {
		d := &detail.Deliverables[i]
		line := fmt.Sprintf("  %-36s  %-12s  %-6s  retries=%d", d.ID, d.Status, d.Model, d.RetryCount)
		if d.Score != nil {
			line += fmt.Sprintf("  fused=%.3f %s", d.Score.Fused, d.Score.Decision)
		}
		if d.LastError != "" {
			line += "  error=" + d.LastError
		}
		cmd.Println(line)
		if d.Description != "" {
			cmd.Printf("      %s\n", d.Description)
		}
	}
	return nil
}

func runCampaignList(cmd *cobra.Command, _ []string) error {
	if campaignService == nil {
		return errors.New("campaign service not configured")
	}

	campaigns, err := campaignService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		cmd.Println("No campaigns. Use 'brandloop campaign import' to create one.")
		return nil
	}

	for _, c := range campaigns {
		cmd.Printf("%s  %-14s  %s  %s\n", c.ID, c.Status, c.BrandID, strings.TrimSpace(c.Name))
	}
	return nil
}

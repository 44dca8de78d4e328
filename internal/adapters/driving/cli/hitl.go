package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

var hitlCmd = &cobra.Command{
	Use:   "hitl",
	Short: "Human review of deliverables",
}

var hitlDecideCmd = &cobra.Command{
	Use:   "decide <deliverable-id> <approve|reject|changes>",
	Short: "Record a review decision",
	Long: `Record a human review decision for a deliverable awaiting review.

Rejections with at least one --reason are retried immediately with a
rewritten prompt while the campaign's retry budget lasts. A rejection
without reasons fails the deliverable.

Examples:
  brandloop hitl decide d-1 approve
  brandloop hitl decide d-1 reject --reason too_dark --reason wrong_colors
  brandloop hitl decide d-1 changes --reason off_brand --note "hair too styled"`,
	Args: cobra.ExactArgs(2),
	RunE: runHITLDecide,
}

var hitlHistoryCmd = &cobra.Command{
	Use:   "history <deliverable-id>",
	Short: "Show a deliverable's prompt rewrites",
	Args:  cobra.ExactArgs(1),
	RunE:  runHITLHistory,
}

func init() {
	hitlDecideCmd.Flags().StringSlice("reason", nil, "rejection category id (repeatable)")
	hitlDecideCmd.Flags().String("note", "", "free-text reviewer note")
	hitlCmd.AddCommand(hitlDecideCmd)
	hitlCmd.AddCommand(hitlHistoryCmd)
	rootCmd.AddCommand(hitlCmd)
}

func runHITLDecide(cmd *cobra.Command, args []string) error {
	if campaignService == nil || orchestrators == nil {
		return errors.New("campaign service not configured")
	}

	decision, err := domain.ParseReviewDecision(args[1])
	if err != nil {
		return err
	}
	reasons, err := cmd.Flags().GetStringSlice("reason")
	if err != nil {
		return fmt.Errorf("getting reason flag: %w", err)
	}
	note, err := cmd.Flags().GetString("note")
	if err != nil {
		return fmt.Errorf("getting note flag: %w", err)
	}

	d, err := campaignService.Deliverable(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("deliverable not found: %s", args[0])
		}
		return err
	}

	outcome, err := orchestrators.ForCampaign(d.CampaignID).HandleDecision(cmd.Context(), domain.HITLDecision{
		DeliverableID:    d.ID,
		Decision:         decision,
		RejectionReasons: reasons,
		Note:             note,
	})
	if err != nil {
		return fmt.Errorf("decision failed: %w", err)
	}

	cmd.Printf("Deliverable %s is now %s.\n", outcome.DeliverableID, outcome.Status)
	if outcome.Requeued {
		cmd.Println("Queued for regeneration with a rewritten prompt.")
	}
	if outcome.Promoted {
		cmd.Println("Campaign complete. Approved work promoted to brand memory.")
	}
	return nil
}

func runHITLHistory(cmd *cobra.Command, args []string) error {
	if campaignService == nil {
		return errors.New("campaign service not configured")
	}

	records, err := campaignService.History(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Printf("No prompt rewrites recorded for %s.\n", args[0])
		return nil
	}

	for _, r := range records {
		cmd.Printf("Attempt %d  %s\n", r.Attempt, r.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("  reasons:  %v\n", r.RejectionReasons)
		cmd.Printf("  before:   %s\n", r.PromptBefore)
		cmd.Printf("  after:    %s\n", r.PromptAfter)
		if r.NegativePrompt != "" {
			cmd.Printf("  negative: %s\n", r.NegativePrompt)
		}
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Brand drift checks",
}

var driftCheckCmd = &cobra.Command{
	Use:   "check <brand-id> <fused-score>",
	Short: "Compare a fused score with the brand baseline",
	Long: `Compare a current fused score with the baseline recorded at the last
DNA promotion. Drift is reported when the score falls below the baseline by
more than the configured threshold.`,
	Args: cobra.ExactArgs(2),
	RunE: runDriftCheck,
}

func init() {
	driftCmd.AddCommand(driftCheckCmd)
	rootCmd.AddCommand(driftCmd)
}

func runDriftCheck(cmd *cobra.Command, args []string) error {
	if promotionService == nil {
		return errors.New("promotion service not configured")
	}

	current, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid fused score %q: %w", args[1], err)
	}

	report := promotionService.CheckDrift(cmd.Context(), args[0], current)

	switch {
	case report.Detected:
		cmd.Printf("Drift detected for %s: %.3f below baseline %.3f (current %.3f)\n",
			report.BrandID, report.Amount, report.Baseline, report.Current)
	case report.Reason == domain.DriftReasonNone:
		cmd.Printf("No drift for %s: current %.3f, baseline %.3f\n",
			report.BrandID, report.Current, report.Baseline)
	default:
		cmd.Printf("No drift check possible for %s: %s\n", report.BrandID, report.Reason)
	}
	return nil
}

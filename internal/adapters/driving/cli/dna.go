package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dnaCmd = &cobra.Command{
	Use:   "dna",
	Short: "Brand memory maintenance",
}

var dnaRemoveCmd = &cobra.Command{
	Use:   "remove <brand-id> <artifact-id>",
	Short: "Retract an artifact from brand memory",
	Long: `Retract a previously promoted artifact from the brand's campaign
partitions. Canonical brand references are never touched.`,
	Args: cobra.ExactArgs(2),
	RunE: runDNARemove,
}

func init() {
	dnaCmd.AddCommand(dnaRemoveCmd)
	rootCmd.AddCommand(dnaCmd)
}

func runDNARemove(cmd *cobra.Command, args []string) error {
	if promotionService == nil {
		return errors.New("promotion service not configured")
	}

	brandID, artifactID := args[0], args[1]
	if err := promotionService.Remove(cmd.Context(), artifactID, brandID); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	cmd.Printf("Removed artifact %s from %s brand memory.\n", artifactID, brandID)
	return nil
}

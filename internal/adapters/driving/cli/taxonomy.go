package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Rejection category catalog",
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rejection categories",
	Long: `List the rejection categories reviewers can cite, with the negative
prompt and positive guidance each one adds to a retry.`,
	RunE: runTaxonomyList,
}

func init() {
	taxonomyCmd.AddCommand(taxonomyListCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomyList(cmd *cobra.Command, _ []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	for _, c := range taxonomyService.List() {
		cmd.Printf("%s (%s)\n", c.ID, c.Label)
		if c.NegativePrompt != "" {
			cmd.Printf("  avoid:  %s\n", c.NegativePrompt)
		}
		if c.PositiveGuidance != "" {
			cmd.Printf("  prefer: %s\n", c.PositiveGuidance)
		}
	}
	return nil
}

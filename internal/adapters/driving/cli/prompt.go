package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Preview prompt rewrites",
}

var promptMutateCmd = &cobra.Command{
	Use:   "mutate <prompt>",
	Short: "Rewrite a prompt for rejection reasons",
	Long: `Show how a prompt is rewritten for a set of rejection reasons, formatted
for the target model.

Example:
  brandloop prompt mutate "Model in linen dress" --reason too_dark --model nano`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPromptMutate,
}

var promptEnhanceCmd = &cobra.Command{
	Use:   "enhance <prompt>",
	Short: "Add quality phrases for a retry attempt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPromptEnhance,
}

func init() {
	promptMutateCmd.Flags().StringSlice("reason", nil, "rejection category id (repeatable)")
	promptMutateCmd.Flags().StringSlice("negative", nil, "extra negative term (repeatable)")
	promptMutateCmd.Flags().StringP("model", "m", "nano", "target model")
	promptEnhanceCmd.Flags().IntP("retry", "r", 1, "retry attempt number")
	promptEnhanceCmd.Flags().StringP("model", "m", "nano", "target model")
	promptCmd.AddCommand(promptMutateCmd)
	promptCmd.AddCommand(promptEnhanceCmd)
	rootCmd.AddCommand(promptCmd)
}

func runPromptMutate(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	reasons, err := cmd.Flags().GetStringSlice("reason")
	if err != nil {
		return fmt.Errorf("getting reason flag: %w", err)
	}
	negatives, err := cmd.Flags().GetStringSlice("negative")
	if err != nil {
		return fmt.Errorf("getting negative flag: %w", err)
	}
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return fmt.Errorf("getting model flag: %w", err)
	}

	out := promptService.Mutate(strings.Join(args, " "), reasons, model, negatives)

	cmd.Printf("Prompt:   %s\n", out.Prompt)
	if out.NegativePrompt != "" {
		cmd.Printf("Negative: %s\n", out.NegativePrompt)
	}
	return nil
}

func runPromptEnhance(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	retry, err := cmd.Flags().GetInt("retry")
	if err != nil {
		return fmt.Errorf("getting retry flag: %w", err)
	}
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return fmt.Errorf("getting model flag: %w", err)
	}

	cmd.Println(promptService.EnhanceForRetry(strings.Join(args, " "), retry, model))
	return nil
}

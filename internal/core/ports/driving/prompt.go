package driving

import "github.com/custodia-labs/brandloop/internal/core/domain"

// TaxonomyService exposes the rejection category catalog.
type TaxonomyService interface {
	// List returns all categories, built-ins first in catalog order, then overrides by id.
	List() []domain.RejectionCategory

	// Get returns a category by id.
	Get(id string) (domain.RejectionCategory, bool)
}

// MutatedPrompt is the output of a prompt mutation.
type MutatedPrompt struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// PromptService rewrites prompts from rejection history.
type PromptService interface {
	// Mutate folds guidance for the rejection reasons into the prompt, formatted for the model.
	Mutate(prompt string, reasons []string, model string, extraNegatives []string) MutatedPrompt

	// EnhanceForRetry appends quality escalation phrases keyed by retry count.
	EnhanceForRetry(prompt string, retryCount int, model string) string
}

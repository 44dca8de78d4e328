package services

import (
	"strings"

	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// Ensure PromptMutator implements the interface.
var _ driving.PromptService = (*PromptMutator)(nil)

// Model identifiers with a dedicated prompt format.
const (
	ModelNano = "nano"
	ModelVeo  = "veo"
	ModelSora = "sora"
)

// promptFormat renders a base prompt plus guidance into a model's prompt style.
type promptFormat struct {
	// compose builds the prompt text and the separate negative string.
	compose func(prompt string, positive, negative []string) (string, string)

	// enhance appends retry quality phrases.
	enhance func(prompt string, phrases []string) string
}

// Inline models carry negatives inside the prompt.
func composeInline(prompt string, positive, negative []string) (string, string) {
	parts := []string{prompt}
	if len(positive) > 0 {
		parts = append(parts, strings.Join(positive, ". "))
	}
	if len(negative) > 0 {
		parts = append(parts, "Avoid: "+strings.Join(negative, ", ")+".")
	}
	return strings.Join(parts, ". "), ""
}

// Separate-negative models take negatives as their own field.
func composeSeparate(prompt string, positive, negative []string) (string, string) {
	parts := []string{prompt}
	if len(positive) > 0 {
		parts = append(parts, strings.Join(positive, ". "))
	}
	return strings.Join(parts, ". ") + ".", strings.Join(negative, ", ")
}

// Premium models get fixed quality descriptors ahead of the guidance.
func composePremium(prompt string, positive, negative []string) (string, string) {
	parts := []string{prompt, "professional quality", "cinematic", "detailed"}
	parts = append(parts, positive...)
	return strings.Join(parts, ", "), strings.Join(negative, ", ")
}

func composeDefault(prompt string, positive, negative []string) (string, string) {
	parts := []string{prompt}
	if len(positive) > 0 {
		parts = append(parts, strings.Join(positive, ", "))
	}
	return strings.Join(parts, ". "), strings.Join(negative, ", ")
}

func enhanceSentence(prompt string, phrases []string) string {
	return prompt + ". " + strings.Join(phrases, ", ") + "."
}

func enhanceClause(prompt string, phrases []string) string {
	return prompt + ", " + strings.Join(phrases, ", ")
}

var promptFormats = map[string]promptFormat{
	ModelNano: {compose: composeInline, enhance: enhanceSentence},
	ModelVeo:  {compose: composeSeparate, enhance: enhanceClause},
	ModelSora: {compose: composePremium, enhance: enhanceClause},
}

var defaultFormat = promptFormat{compose: composeDefault, enhance: enhanceClause}

// retryEnhancements escalate with the retry count; anything else gets the last tier.
var retryEnhancements = map[int][]string{
	1: {"high quality", "detailed"},
	2: {"professional", "studio quality", "sharp focus"},
}

var finalEnhancement = []string{"masterful", "exceptional quality", "perfect lighting"}

// PromptMutator rewrites prompts from rejection feedback.
type PromptMutator struct {
	taxonomy *RejectionTaxonomy
}

// NewPromptMutator creates a mutator backed by a taxonomy.
func NewPromptMutator(taxonomy *RejectionTaxonomy) *PromptMutator {
	if taxonomy == nil {
		taxonomy = NewRejectionTaxonomy(nil)
	}
	return &PromptMutator{taxonomy: taxonomy}
}

// Taxonomy returns the catalog the mutator reads from.
func (m *PromptMutator) Taxonomy() *RejectionTaxonomy {
	return m.taxonomy
}

// Mutate folds the guidance for every reason into the original prompt.
// Extra negatives are merged after the taxonomy's and both lists are
// deduplicated keeping first occurrence. Unknown models use the default format.
func (m *PromptMutator) Mutate(prompt string, reasons []string, model string, extraNegatives []string) driving.MutatedPrompt {
	negative := m.taxonomy.NegativeTerms(reasons)
	negative = append(negative, extraNegatives...)
	negative = dedupe(negative)
	positive := dedupe(m.taxonomy.PositiveGuidance(reasons))

	out, neg := formatFor(model).compose(prompt, positive, negative)
	return driving.MutatedPrompt{Prompt: out, NegativePrompt: neg}
}

// EnhanceForRetry appends quality phrases that escalate with the retry count.
func (m *PromptMutator) EnhanceForRetry(prompt string, retryCount int, model string) string {
	phrases, ok := retryEnhancements[retryCount]
	if !ok {
		phrases = finalEnhancement
	}
	return formatFor(model).enhance(prompt, phrases)
}

func formatFor(model string) promptFormat {
	if f, ok := promptFormats[strings.ToLower(model)]; ok {
		return f
	}
	return defaultFormat
}

// dedupe removes repeated entries keeping first occurrence.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

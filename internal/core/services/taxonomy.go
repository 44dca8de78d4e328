package services

import (
	"sort"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driving"
)

// Ensure RejectionTaxonomy implements the interface.
var _ driving.TaxonomyService = (*RejectionTaxonomy)(nil)

// RejectionTaxonomy is a read-only catalog of rejection categories.
// Each instance owns its own copy, so overrides never leak between instances.
type RejectionTaxonomy struct {
	order      []string
	categories map[string]domain.RejectionCategory
}

// NewRejectionTaxonomy builds a catalog from the defaults plus overrides.
// An override with an existing id replaces the default entry in place;
// new ids are appended in id order. A blank override ID takes its map key.
func NewRejectionTaxonomy(overrides map[string]domain.RejectionCategory) *RejectionTaxonomy {
	defaults := domain.DefaultRejectionCategories()
	t := &RejectionTaxonomy{
		order:      make([]string, 0, len(defaults)+len(overrides)),
		categories: make(map[string]domain.RejectionCategory, len(defaults)+len(overrides)),
	}
	for _, c := range defaults {
		t.order = append(t.order, c.ID)
		t.categories[c.ID] = c
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c := overrides[k]
		c.ID = k
		if c.Label == "" {
			c.Label = k
		}
		if _, exists := t.categories[k]; !exists {
			t.order = append(t.order, k)
		}
		t.categories[k] = c
	}
	return t
}

// List returns all categories in catalog order.
func (t *RejectionTaxonomy) List() []domain.RejectionCategory {
	out := make([]domain.RejectionCategory, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.categories[id])
	}
	return out
}

// Get returns the category for an id.
func (t *RejectionTaxonomy) Get(id string) (domain.RejectionCategory, bool) {
	c, ok := t.categories[id]
	return c, ok
}

// NegativeTerms returns the non-empty negative fragments for the given
// reasons, in reason order. Unknown ids contribute nothing.
func (t *RejectionTaxonomy) NegativeTerms(reasons []string) []string {
	var out []string
	for _, r := range reasons {
		if c, ok := t.categories[r]; ok && c.NegativePrompt != "" {
			out = append(out, c.NegativePrompt)
		}
	}
	return out
}

// PositiveGuidance returns the non-empty positive fragments for the
// given reasons, in reason order. Unknown ids contribute nothing.
func (t *RejectionTaxonomy) PositiveGuidance(reasons []string) []string {
	var out []string
	for _, r := range reasons {
		if c, ok := t.categories[r]; ok && c.PositiveGuidance != "" {
			out = append(out, c.PositiveGuidance)
		}
	}
	return out
}

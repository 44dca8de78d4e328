package file

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// taxonomyFile is the on-disk shape of a rejection category override file.
//
//	categories:
//	  - id: too_dark
//	    negative_prompt: "dark lighting, murky"
//	    positive_guidance: "bright daylight"
type taxonomyFile struct {
	Categories []domain.RejectionCategory `yaml:"categories"`
}

// LoadTaxonomyOverrides reads rejection category overrides from a YAML file.
// An empty path yields no overrides. A bare list of categories is also accepted.
func LoadTaxonomyOverrides(path string) (map[string]domain.RejectionCategory, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy overrides %s: %w", path, err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		// Try parsing as a bare list
		var list []domain.RejectionCategory
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, fmt.Errorf("parsing taxonomy overrides %s: %w", path, err)
		}
		file.Categories = list
	}

	overrides := make(map[string]domain.RejectionCategory, len(file.Categories))
	for i, c := range file.Categories {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: taxonomy override %d has no id", domain.ErrInvalidInput, i)
		}
		overrides[c.ID] = c
	}
	return overrides, nil
}

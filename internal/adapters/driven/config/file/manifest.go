package file

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/brandloop/internal/core/domain"
)

// Manifest describes a campaign and its deliverables for import.
//
//	brand_id: jenni_kayne
//	name: Spring Linen
//	max_retries: 3
//	deliverables:
//	  - description: Hero shot
//	    ai_model: nano
//	    prompt: Model in linen dress on a sunlit porch
type Manifest struct {
	ID           string                `yaml:"id"`
	BrandID      string                `yaml:"brand_id"`
	Name         string                `yaml:"name"`
	MaxRetries   *int                  `yaml:"max_retries"`
	Deliverables []ManifestDeliverable `yaml:"deliverables"`
}

// ManifestDeliverable is one entry of a manifest.
type ManifestDeliverable struct {
	ID              string   `yaml:"id"`
	Description     string   `yaml:"description"`
	Model           string   `yaml:"ai_model"`
	Prompt          string   `yaml:"prompt"`
	ReferenceImages []string `yaml:"reference_images"`
}

// LoadManifest reads and validates a campaign manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %v", domain.ErrInvalidInput, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate reports every problem with the manifest at once.
func (m *Manifest) Validate() error {
	var errs []error
	if strings.TrimSpace(m.BrandID) == "" {
		errs = append(errs, errors.New("brand_id is required"))
	}
	if m.MaxRetries != nil && *m.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries %d is negative", *m.MaxRetries))
	}
	if len(m.Deliverables) == 0 {
		errs = append(errs, errors.New("at least one deliverable is required"))
	}
	seen := make(map[string]bool)
	for i, d := range m.Deliverables {
		if strings.TrimSpace(d.Prompt) == "" {
			errs = append(errs, fmt.Errorf("deliverable %d: prompt is required", i))
		}
		if strings.TrimSpace(d.Model) == "" {
			errs = append(errs, fmt.Errorf("deliverable %d: ai_model is required", i))
		}
		if d.ID != "" {
			if seen[d.ID] {
				errs = append(errs, fmt.Errorf("deliverable %d: duplicate id %q", i, d.ID))
			}
			seen[d.ID] = true
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// Build creates the campaign and its pending deliverables.
// Missing ids are filled with UUIDs.
func (m *Manifest) Build() (domain.Campaign, []domain.Deliverable) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	name := m.Name
	if name == "" {
		name = id
	}

	campaign := domain.NewCampaign(id, m.BrandID, name)
	if m.MaxRetries != nil {
		campaign.MaxRetries = *m.MaxRetries
	}

	deliverables := make([]domain.Deliverable, 0, len(m.Deliverables))
	for _, md := range m.Deliverables {
		did := md.ID
		if did == "" {
			did = uuid.New().String()
		}
		d := domain.NewDeliverable(did, id, m.BrandID, strings.ToLower(md.Model), strings.TrimSpace(md.Prompt))
		d.Description = md.Description
		d.ReferenceImages = md.ReferenceImages
		deliverables = append(deliverables, d)
	}
	return campaign, deliverables
}

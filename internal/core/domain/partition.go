package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// PartitionKind separates canonical reference data from generated content.
type PartitionKind string

// Partition kinds.
const (
	// PartitionCore holds canonical brand references. Read-only for generated content.
	PartitionCore PartitionKind = "core"

	// PartitionCampaign holds approved generated content. The only write target.
	PartitionCampaign PartitionKind = "campaign"

	// PartitionLegacy is the pre-separation naming, treated as core.
	PartitionLegacy PartitionKind = "legacy"
)

// Embedding modalities with their vector dimensions.
var modalityDimensions = map[string]int{
	"clip":   768,
	"e5":     1024,
	"cohere": 1536,
}

// Modalities lists the embedding modalities in a stable order.
var Modalities = []string{"clip", "e5", "cohere"}

const clientPrefix = "client_"

var (
	partitionPattern = regexp.MustCompile(`^([a-z0-9]+)-(core|campaign)-(clip768|e5-1024|cohere1536)$`)
	legacyPattern    = regexp.MustCompile(`^([a-z0-9]+)-brand-dna-(clip768|e5|cohere)$`)
)

// BrandSlug converts a brand id to the storage-safe slug.
// "jenni_kayne" and "Jenni Kayne" both become "jennikayne".
func BrandSlug(brandID string) string {
	s := strings.ReplaceAll(BrandIDFromClientID(brandID), "_", "")
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// ClientID converts a brand id to the record store's client id form.
func ClientID(brandID string) string {
	normalized := strings.ReplaceAll(strings.ToLower(brandID), " ", "_")
	if strings.HasPrefix(normalized, clientPrefix) {
		return normalized
	}
	return clientPrefix + normalized
}

// BrandIDFromClientID strips the client prefix if present.
func BrandIDFromClientID(clientID string) string {
	return strings.TrimPrefix(clientID, clientPrefix)
}

// PartitionName builds "<slug>-<kind>-<model><dim>"; e5 uses a dash before the dimension.
func PartitionName(brandID, modality string, kind PartitionKind) (string, error) {
	dim, ok := modalityDimensions[modality]
	if !ok {
		return "", fmt.Errorf("%w: unknown modality %q", ErrInvalidPartition, modality)
	}
	if kind != PartitionCore && kind != PartitionCampaign {
		return "", fmt.Errorf("%w: kind %q", ErrInvalidPartition, kind)
	}
	slug := BrandSlug(brandID)
	if modality == "e5" {
		return fmt.Sprintf("%s-%s-e5-%d", slug, kind, dim), nil
	}
	return fmt.Sprintf("%s-%s-%s%d", slug, kind, modality, dim), nil
}

// LegacyPartitionName builds the pre-separation name for a modality.
func LegacyPartitionName(brandID, modality string) (string, error) {
	slug := BrandSlug(brandID)
	switch modality {
	case "clip":
		return slug + "-brand-dna-clip768", nil
	case "e5", "cohere":
		return slug + "-brand-dna-" + modality, nil
	default:
		return "", fmt.Errorf("%w: unknown modality %q", ErrInvalidPartition, modality)
	}
}

// Partitions returns partition names for every modality of a brand.
func Partitions(brandID string, kind PartitionKind) map[string]string {
	out := make(map[string]string, len(Modalities))
	for _, m := range Modalities {
		name, err := PartitionName(brandID, m, kind)
		if err != nil {
			continue
		}
		out[m] = name
	}
	return out
}

// ParsedPartition is the decomposition of a partition name.
type ParsedPartition struct {
	BrandSlug string
	Kind      PartitionKind
	Modality  string
}

// ParsePartition decomposes a partition name.
func ParsePartition(name string) (ParsedPartition, error) {
	if m := partitionPattern.FindStringSubmatch(name); m != nil {
		return ParsedPartition{
			BrandSlug: m[1],
			Kind:      PartitionKind(m[2]),
			Modality:  modalityFromSuffix(m[3]),
		}, nil
	}
	if m := legacyPattern.FindStringSubmatch(name); m != nil {
		return ParsedPartition{
			BrandSlug: m[1],
			Kind:      PartitionLegacy,
			Modality:  modalityFromSuffix(m[2]),
		}, nil
	}
	return ParsedPartition{}, fmt.Errorf("%w: %q", ErrInvalidPartition, name)
}

func modalityFromSuffix(suffix string) string {
	for _, m := range Modalities {
		if strings.HasPrefix(suffix, m) {
			return m
		}
	}
	return suffix
}

// AssertWritePartition rejects anything but a campaign partition.
func AssertWritePartition(name string) error {
	p, err := ParsePartition(name)
	if err != nil {
		return err
	}
	if p.Kind != PartitionCampaign {
		return fmt.Errorf("%w: %s", ErrCoreWriteForbidden, name)
	}
	return nil
}

// AssertGradingPartition rejects campaign partitions; grading reads core or legacy only.
func AssertGradingPartition(name string) error {
	p, err := ParsePartition(name)
	if err != nil {
		return err
	}
	if p.Kind == PartitionCampaign {
		return fmt.Errorf("%w: %s", ErrGradingPartition, name)
	}
	return nil
}

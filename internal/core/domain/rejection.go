package domain

// RejectionCategory maps a rejection reason to prompt guidance.
type RejectionCategory struct {
	// ID is the stable reason identifier, e.g. "too_dark".
	ID string `json:"id" yaml:"id"`

	// Label is the human-readable name shown to reviewers.
	Label string `json:"label" yaml:"label"`

	// NegativePrompt lists what the next attempt should avoid.
	NegativePrompt string `json:"negative_prompt" yaml:"negative_prompt"`

	// PositiveGuidance describes what the next attempt should aim for.
	PositiveGuidance string `json:"positive_guidance" yaml:"positive_guidance"`
}

// DefaultRejectionCategories returns the built-in catalog in display order.
// A new slice is returned on every call.
func DefaultRejectionCategories() []RejectionCategory {
	return []RejectionCategory{
		{
			ID:               "too_dark",
			Label:            "Too Dark",
			NegativePrompt:   "dark lighting, shadows, underexposed, dim, murky",
			PositiveGuidance: "bright natural lighting, well-lit environment",
		},
		{
			ID:               "too_bright",
			Label:            "Too Bright",
			NegativePrompt:   "overexposed, washed out, harsh light, blown out highlights",
			PositiveGuidance: "soft natural lighting, balanced exposure",
		},
		{
			ID:               "wrong_colors",
			Label:            "Wrong Colors",
			NegativePrompt:   "neon colors, saturated colors, vibrant colors, harsh colors",
			PositiveGuidance: "natural color palette, muted tones, brand colors",
		},
		{
			ID:               ReasonOffBrand,
			Label:            "Off Brand",
			NegativePrompt:   "off-brand aesthetic, inconsistent style, mismatched vibe",
			PositiveGuidance: "brand-aligned aesthetic, consistent styling",
		},
		{
			ID:               ReasonWrongComposition,
			Label:            "Wrong Composition",
			NegativePrompt:   "poor framing, bad crop, awkward angles, unbalanced",
			PositiveGuidance: "well-composed, balanced framing, rule of thirds",
		},
		{
			ID:               "cluttered",
			Label:            "Too Cluttered",
			NegativePrompt:   "busy background, clutter, distracting elements, messy",
			PositiveGuidance: "clean background, minimal distractions, organized",
		},
		{
			ID:               "wrong_model",
			Label:            "Wrong Model/Person",
			NegativePrompt:   "different person, wrong model, inconsistent face",
			PositiveGuidance: "consistent model appearance",
		},
		{
			ID:               "wrong_outfit",
			Label:            "Wrong Outfit",
			NegativePrompt:   "wrong clothing, incorrect outfit, mismatched attire",
			PositiveGuidance: "correct outfit as specified",
		},
		{
			ID:               ReasonQualityIssue,
			Label:            "Quality Issue",
			NegativePrompt:   "artifacts, blur, distortion, noise, compression, low quality",
			PositiveGuidance: "high quality, sharp, clean, detailed",
		},
		{
			ID:    "other",
			Label: "Other",
		},
	}
}

// Package gemini provides an image generator adapter using the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultModel   = domain.DefaultGeminiModel
	DefaultTimeout = 120 * time.Second
)

// ErrAPIKeyRequired is returned when no API key is configured.
var ErrAPIKeyRequired = errors.New("gemini API key is required")

// Config holds configuration for the Gemini generator.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the image model (default: gemini-2.5-flash-image).
	Model string

	// OutputDir receives generated files (default: the OS temp dir).
	OutputDir string

	// Timeout bounds one generation call (default: 120s).
	Timeout time.Duration
}

// contentGenerator is the subset of *genai.Models the generator calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator produces images with Gemini's native image output.
type Generator struct {
	models    contentGenerator
	model     string
	outputDir string
	timeout   time.Duration
}

// NewGenerator creates a Gemini generator.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models contentGenerator, cfg Config) *Generator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Generator{
		models:    models,
		model:     cfg.Model,
		outputDir: cfg.OutputDir,
		timeout:   cfg.Timeout,
	}
}

// Generate asks Gemini for one image and writes it to the output directory.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(promptText(req))}
	for _, ref := range req.ReferenceImages {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: reading reference image %s: %w", domain.ErrGenerationFailed, ref, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType(ref)))
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	blob := firstImage(resp)
	if blob == nil {
		return nil, fmt.Errorf("%w: %w: response carried no image", domain.ErrGenerationFailed, domain.ErrNoArtifact)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output dir: %w", domain.ErrGenerationFailed, err)
	}
	name := fmt.Sprintf("%s-%s%s", req.DeliverableID, uuid.New().String()[:8], extension(blob.MIMEType))
	path := filepath.Join(g.outputDir, name)
	if err := os.WriteFile(path, blob.Data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: writing image: %w", domain.ErrGenerationFailed, err)
	}

	return &domain.Artifact{
		Type: domain.ArtifactTypeImage,
		Name: name,
		Path: path,
		Size: int64(len(blob.Data)),
	}, nil
}

// promptText keeps inline avoid clauses as-is and appends any separate negative prompt.
func promptText(req domain.GenerationRequest) string {
	if req.NegativePrompt == "" {
		return req.Prompt
	}
	return req.Prompt + "\n\nAvoid: " + req.NegativePrompt
}

func firstImage(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 &&
				strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				return part.InlineData
			}
		}
	}
	return nil
}

func mimeType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return "image/png"
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

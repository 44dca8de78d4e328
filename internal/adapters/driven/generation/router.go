// Package generation provides a Generator that dispatches by model id.
package generation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.Generator = (*Router)(nil)

// Router sends each request to the generator registered for its model.
// Requests for unregistered models go to the fallback, if any.
type Router struct {
	routes   map[string]driven.Generator
	fallback driven.Generator
}

// NewRouter creates a router with an optional fallback generator.
func NewRouter(fallback driven.Generator) *Router {
	return &Router{routes: make(map[string]driven.Generator), fallback: fallback}
}

// Register routes a model id (case-insensitive) to a generator.
func (r *Router) Register(model string, g driven.Generator) *Router {
	r.routes[strings.ToLower(model)] = g
	return r
}

// Models lists the registered model ids.
func (r *Router) Models() []string {
	models := make([]string, 0, len(r.routes))
	for m := range r.routes {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// Generate forwards the request.
func (r *Router) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Artifact, error) {
	g, ok := r.routes[strings.ToLower(req.Model)]
	if !ok {
		g = r.fallback
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrGenerationFailed, domain.ErrUnknownModel, req.Model)
	}
	return g.Generate(ctx, req)
}

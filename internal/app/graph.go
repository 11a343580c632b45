package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/rdarder/modular/internal/core"
)

// Graph validates a document and then solves it as a whole: provider
// selection per module, whole-graph completeness, and resource
// dependency ordering.
func (s Service) Graph(ctx context.Context, req GraphRequest) (GraphResult, error) {
	if strings.TrimSpace(req.Path) == "" {
		return GraphResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("declaration file path is required")
	}
	doc, err := s.Source.Load(req.Path)
	if err != nil {
		return GraphResult{}, err
	}
	validated, registry, err := s.validateDocument(ctx, doc, s.requestPolicy(ValidateRequest{
		Partial:       req.Partial,
		AllowOverride: true,
	}))
	if err != nil {
		return GraphResult{}, err
	}
	if err := FailedValidation(validated); err != nil {
		return GraphResult{}, err
	}

	graph, err := core.NewGraphSolver(registry).Solve(ctx)
	if err != nil {
		return GraphResult{}, err
	}
	return GraphResult{Providers: graph.Providers, Order: graph.Order}, nil
}

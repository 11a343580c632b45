package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect summarizes a valid declaration document: per-provider
// resource and binding counts. A document with diagnostics cannot be
// inspected.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if strings.TrimSpace(req.Path) == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("declaration file path is required")
	}
	doc, err := s.Source.Load(req.Path)
	if err != nil {
		return InspectResult{}, err
	}
	validated, registry, err := s.validateDocument(ctx, doc, s.requestPolicy(ValidateRequest{AllowOverride: true}))
	if err != nil {
		return InspectResult{}, err
	}
	if err := FailedValidation(validated); err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{}
	for _, module := range registry.Modules() {
		result.Modules = append(result.Modules, module.Name)
	}
	sort.Strings(result.Modules)

	for _, provider := range registry.Providers() {
		summary := ProviderSummary{
			Name:     provider.Name,
			Module:   provider.Module,
			Base:     provider.Base,
			Bindings: len(provider.Bindings),
		}
		for name := range provider.Resources {
			entry := provider.Resources[name]
			switch {
			case provider.Own(name):
				summary.Own++
			case entry.Owner != provider.Module:
				summary.Inherited++
			}
		}
		result.Providers = append(result.Providers, summary)
	}
	sort.Slice(result.Providers, func(i, j int) bool {
		return result.Providers[i].Name < result.Providers[j].Name
	})
	return result, nil
}

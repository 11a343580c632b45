package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/rdarder/modular/internal/shared"
	"github.com/rdarder/modular/internal/types"
)

// GraphSolver checks a fully validated registry as a whole: every
// module must end up with exactly one provider (installed or the
// module's default), every registered provider must be used, and the
// resource dependency graph must be acyclic. It selects providers and
// orders resources; it never instantiates anything.
type GraphSolver struct {
	Registry *Registry
}

func NewGraphSolver(reg *Registry) GraphSolver {
	return GraphSolver{Registry: reg}
}

type Graph struct {
	// Providers maps each module to the provider selected for it.
	Providers map[string]string
	// Order lists qualified resource names in dependency order:
	// every resource appears after the resources it depends on.
	Order []string
}

func (s GraphSolver) Solve(ctx context.Context) (Graph, error) {
	if s.Registry == nil {
		return Graph{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("graph solver requires a registry")
	}

	modules := s.Registry.Modules()
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })

	graph := Graph{Providers: map[string]string{}}
	selected := map[string]types.ProviderDescriptor{}
	for _, module := range modules {
		provider, err := s.selectProvider(module)
		if err != nil {
			return Graph{}, err
		}
		graph.Providers[module.Name] = provider.Name
		selected[provider.Name] = provider
	}

	if err := s.failOnUnusedProviders(selected); err != nil {
		return Graph{}, err
	}

	order, err := s.order(selected)
	if err != nil {
		return Graph{}, err
	}
	graph.Order = order

	log.Ctx(ctx).Debug().Int("modules", len(graph.Providers)).Int("resources", len(order)).Msg("graph solved")
	return graph, nil
}

func (s GraphSolver) selectProvider(module types.ModuleDescriptor) (types.ProviderDescriptor, error) {
	if provider, ok := s.Registry.ProviderFor(module.Name); ok {
		return provider, nil
	}
	if module.DefaultProvider == "" {
		return types.ProviderDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("module %s has no installed or default provider", module.Name))
	}
	provider, err := s.Registry.Provider(module.DefaultProvider)
	if err != nil {
		return types.ProviderDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("default provider %s of module %s is not registered", module.DefaultProvider, module.Name)).
			WithCause(err)
	}
	if provider.Module != module.Name {
		return types.ProviderDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("default provider %s provides for %s, not %s", provider.Name, provider.Module, module.Name))
	}
	return provider, nil
}

// failOnUnusedProviders rejects registered providers that were not
// selected for any module. Base providers kept only for inheritance
// purposes are exempt.
func (s GraphSolver) failOnUnusedProviders(selected map[string]types.ProviderDescriptor) error {
	inherited := map[string]struct{}{}
	for _, provider := range selected {
		for _, base := range provider.Base {
			inherited[base] = struct{}{}
		}
	}
	var unused []string
	for _, provider := range s.Registry.Providers() {
		if _, used := selected[provider.Name]; used {
			continue
		}
		if _, isBase := inherited[provider.Name]; isBase {
			continue
		}
		unused = append(unused, provider.Name)
	}
	if len(unused) == 0 {
		return nil
	}
	sort.Strings(unused)
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("registered providers not used by any module: %s", strings.Join(unused, ", ")))
}

// order runs a depth-first walk over resource dependencies, failing
// on the first cycle found. Dependencies always resolve within a
// single provider's scope, so nodes are qualified per provider.
func (s GraphSolver) order(selected map[string]types.ProviderDescriptor) ([]string, error) {
	providers := make([]types.ProviderDescriptor, 0, len(selected))
	for _, provider := range selected {
		providers = append(providers, provider)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })

	var order []string
	solved := map[string]struct{}{}
	for _, provider := range providers {
		for _, name := range sortedResourceNames(provider.Resources) {
			path, err := s.visit(provider, name, map[string]struct{}{}, solved, &order)
			if err != nil {
				return nil, err
			}
			if path != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("circular resource dependency: %s", strings.Join(path, " -> ")))
			}
		}
	}
	return order, nil
}

// visit returns a non-nil cycle path when target participates in a
// dependency loop, appending solved resources to order post-order.
func (s GraphSolver) visit(
	provider types.ProviderDescriptor,
	target string,
	inStack map[string]struct{},
	solved map[string]struct{},
	order *[]string,
) ([]string, error) {
	node := shared.Qualify(provider.Name, target)
	if _, done := solved[node]; done {
		return nil, nil
	}
	if _, looping := inStack[node]; looping {
		return []string{node}, nil
	}
	binding, bound := provider.Bindings[target]
	if !bound {
		// Partial providers leave resources unbound; they carry no
		// dependency edges.
		solved[node] = struct{}{}
		*order = append(*order, node)
		return nil, nil
	}
	inStack[node] = struct{}{}
	for _, dep := range binding.Dependencies {
		path, err := s.visit(provider, dep.Resource.Name, inStack, solved, order)
		if err != nil {
			return nil, err
		}
		if path != nil {
			return append([]string{node}, path...), nil
		}
	}
	delete(inStack, node)
	solved[node] = struct{}{}
	*order = append(*order, node)
	return nil, nil
}

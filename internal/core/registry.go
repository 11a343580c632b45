package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/rdarder/modular/internal/types"
)

// Scope is anything a resource name can be resolved against: a module
// (public resources only) or a provider with its ancestor chain.
// ScopeName must be unique across scope kinds; it keys the resolution
// cache, and a module and a provider may share a bare name.
type Scope interface {
	ScopeName() string
	Lookup(name string) (types.ResourceEntry, bool)
}

// Outcome is the memoized result of validating one provider. A
// provider is validated at most once; subclasses read the recorded
// outcome of their base instead of re-running it.
type Outcome struct {
	Descriptor  types.ProviderDescriptor
	Diagnostics []types.Diagnostic
}

func (o Outcome) Valid() bool {
	return len(o.Diagnostics) == 0
}

// Registry holds validated module and provider descriptors by name
// and memoizes name resolution and validation outcomes. Descriptors
// are immutable once added; the cache is the only mutable state and
// is purely read-through.
type Registry struct {
	modules   map[string]types.ModuleDescriptor
	providers map[string]types.ProviderDescriptor
	byModule  map[string]string
	outcomes  map[string]Outcome
	resolved  map[string]types.ResourceEntry
}

func NewRegistry() *Registry {
	return &Registry{
		modules:   map[string]types.ModuleDescriptor{},
		providers: map[string]types.ProviderDescriptor{},
		byModule:  map[string]string{},
		outcomes:  map[string]Outcome{},
		resolved:  map[string]types.ResourceEntry{},
	}
}

func (r *Registry) AddModule(desc types.ModuleDescriptor) error {
	if _, ok := r.modules[desc.Name]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("module already registered: %s", desc.Name))
	}
	r.modules[desc.Name] = desc
	return nil
}

// AddProvider registers a validated provider descriptor and installs
// it for its target module. Installing a second provider for the same
// module requires allowOverride.
func (r *Registry) AddProvider(desc types.ProviderDescriptor, allowOverride bool) error {
	if _, ok := r.providers[desc.Name]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("provider already registered: %s", desc.Name))
	}
	installed, ok := r.byModule[desc.Module]
	if ok && installed != desc.Name && !allowOverride {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("module %s already provided by %s", desc.Module, installed))
	}
	r.providers[desc.Name] = desc
	r.byModule[desc.Module] = desc.Name
	return nil
}

func (r *Registry) Module(name string) (types.ModuleDescriptor, error) {
	desc, ok := r.modules[name]
	if !ok {
		return types.ModuleDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("module not registered: %s", name))
	}
	return desc, nil
}

func (r *Registry) Provider(name string) (types.ProviderDescriptor, error) {
	desc, ok := r.providers[name]
	if !ok {
		return types.ProviderDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("provider not registered: %s", name))
	}
	return desc, nil
}

func (r *Registry) IsModule(name string) bool {
	_, ok := r.modules[name]
	return ok
}

func (r *Registry) IsProvider(name string) bool {
	_, ok := r.providers[name]
	return ok
}

// ProviderFor returns the provider installed for a module, if any.
func (r *Registry) ProviderFor(module string) (types.ProviderDescriptor, bool) {
	name, ok := r.byModule[module]
	if !ok {
		return types.ProviderDescriptor{}, false
	}
	desc, ok := r.providers[name]
	return desc, ok
}

func (r *Registry) Modules() []types.ModuleDescriptor {
	out := make([]types.ModuleDescriptor, 0, len(r.modules))
	for _, desc := range r.modules {
		out = append(out, desc)
	}
	return out
}

func (r *Registry) Providers() []types.ProviderDescriptor {
	out := make([]types.ProviderDescriptor, 0, len(r.providers))
	for _, desc := range r.providers {
		out = append(out, desc)
	}
	return out
}

func (r *Registry) RecordOutcome(provider string, outcome Outcome) {
	r.outcomes[provider] = outcome
}

func (r *Registry) OutcomeOf(provider string) (Outcome, bool) {
	outcome, ok := r.outcomes[provider]
	return outcome, ok
}

// Resolve looks a name up through a scope, memoizing hits. Misses are
// not cached: a scope may be queried again after more declarations
// were registered.
func (r *Registry) Resolve(scope Scope, name string) (types.ResourceEntry, bool) {
	key := scope.ScopeName() + "\x00" + name
	if entry, ok := r.resolved[key]; ok {
		return entry, true
	}
	entry, ok := scope.Lookup(name)
	if ok {
		r.resolved[key] = entry
	}
	return entry, ok
}

// ModuleScope wraps a module descriptor for resolution against its
// public resources only.
func ModuleScope(desc types.ModuleDescriptor) Scope {
	return moduleScope{desc: desc}
}

type moduleScope struct {
	desc types.ModuleDescriptor
}

func (s moduleScope) ScopeName() string {
	return "module:" + s.desc.Name
}

func (s moduleScope) Lookup(name string) (types.ResourceEntry, bool) {
	entry, ok := s.desc.Resources[name]
	return entry, ok
}

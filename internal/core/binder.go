package core

import (
	"sort"

	"github.com/rdarder/modular/internal/shared"
	"github.com/rdarder/modular/internal/types"
)

type providerScope struct {
	name      string
	resources map[string]types.ResourceEntry
}

func (s providerScope) ScopeName() string {
	return "provider:" + s.name
}

func (s providerScope) Lookup(name string) (types.ResourceEntry, bool) {
	entry, ok := s.resources[name]
	return entry, ok
}

// bindMethods matches each declared method to the resource it
// provides and resolves its parameters through the provider's scope
// chain. Inherited bindings from the base descriptor carry over
// unless the subclass redeclares the method. Unbound resources are
// diagnosed only under a totality policy.
func (v Validator) bindMethods(
	decl types.ProviderDecl,
	reg *Registry,
	module types.ModuleDescriptor,
	base *types.ProviderDescriptor,
	resources map[string]types.ResourceEntry,
	diags *collector,
) map[string]types.MethodBinding {
	scope := providerScope{name: decl.Name, resources: resources}
	bindings := map[string]types.MethodBinding{}
	if base != nil {
		for name, binding := range base.Bindings {
			bindings[name] = binding
		}
	}

	ownBindings := map[string]struct{}{}
	for _, method := range decl.Methods {
		if diags.full() {
			break
		}
		methodName := shared.MethodName(method.Resource)
		entry, known := reg.Resolve(scope, method.Resource)
		if !known {
			diags.add(types.Diagnostic{
				Rule:    types.RuleDanglingMethod,
				Subject: decl.Name,
				Method:  methodName,
				Suggestion: &types.Suggestion{
					Action: types.SuggestionRemoveMethod,
					Method: methodName,
				},
			})
			continue
		}
		if _, dup := ownBindings[method.Resource]; dup {
			diags.add(types.Diagnostic{
				Rule:     types.RuleDanglingMethod,
				Subject:  decl.Name,
				Method:   methodName,
				Resource: method.Resource,
				Conflict: decl.Name,
				Suggestion: &types.Suggestion{
					Action: types.SuggestionRemoveMethod,
					Method: methodName,
				},
			})
			continue
		}
		binding, ok := v.bindMethod(decl, reg, scope, module, method, entry, diags)
		if !ok {
			continue
		}
		ownBindings[method.Resource] = struct{}{}
		bindings[method.Resource] = binding
	}

	if !diags.full() {
		v.checkInheritedBindings(decl, module, base, resources, bindings, diags)
	}

	if v.Policy.RequireTotal && !diags.full() {
		for _, name := range sortedResourceNames(resources) {
			if _, bound := bindings[name]; bound {
				continue
			}
			entry := resources[name]
			diags.add(types.Diagnostic{
				Rule:     types.RuleUnboundResource,
				Subject:  decl.Name,
				Resource: name,
				Kind:     entry.Kind,
				Required: entry.Type,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionAddMethod,
					Resource: name,
					Type:     entry.Type,
					Method:   shared.MethodName(name),
				},
			})
			if diags.full() {
				break
			}
		}
	}
	return bindings
}

// checkInheritedBindings re-checks bindings carried over from the base
// chain against the merged resource types. A base method was checked
// against the types the base saw; an override declared here can leave
// it returning something the narrowed resource no longer accepts.
// Resources the base chain itself declared are the refinement walk's
// concern and are skipped.
func (v Validator) checkInheritedBindings(
	decl types.ProviderDecl,
	module types.ModuleDescriptor,
	base *types.ProviderDescriptor,
	resources map[string]types.ResourceEntry,
	bindings map[string]types.MethodBinding,
	diags *collector,
) {
	if base == nil {
		return
	}
	for _, name := range sortedResourceNames(resources) {
		binding, bound := bindings[name]
		if !bound || binding.Owner == decl.Name {
			continue
		}
		if baseEntry, declared := base.Resources[name]; declared && baseEntry.Owner != module.Name {
			continue
		}
		entry := resources[name]
		if v.Oracle.IsCompatible(binding.Returns, entry.Type) {
			continue
		}
		if entry.Owner == decl.Name {
			diags.add(types.Diagnostic{
				Rule:      types.RuleMissingRefinement,
				Subject:   decl.Name,
				Resource:  name,
				Candidate: entry.Type,
				Required:  binding.Returns,
				Kind:      entry.Kind,
				Conflict:  binding.Owner,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionAddMethod,
					Resource: name,
					Type:     entry.Type,
					Method:   shared.MethodName(name),
				},
			})
		} else {
			diags.add(types.Diagnostic{
				Rule:      types.RuleIncompatibleReturnType,
				Subject:   decl.Name,
				Resource:  name,
				Method:    binding.Method,
				Candidate: binding.Returns,
				Required:  entry.Type,
				Kind:      entry.Kind,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionChangeType,
					Resource: name,
					Type:     entry.Type,
					Method:   binding.Method,
				},
			})
		}
		if diags.full() {
			return
		}
	}
}

func (v Validator) bindMethod(
	decl types.ProviderDecl,
	reg *Registry,
	scope providerScope,
	module types.ModuleDescriptor,
	method types.MethodDecl,
	entry types.ResourceEntry,
	diags *collector,
) (types.MethodBinding, bool) {
	methodName := shared.MethodName(method.Resource)
	ok := true
	if !v.Oracle.IsCompatible(method.Returns, entry.Type) {
		diags.add(types.Diagnostic{
			Rule:      types.RuleIncompatibleReturnType,
			Subject:   decl.Name,
			Resource:  method.Resource,
			Method:    methodName,
			Candidate: method.Returns,
			Required:  entry.Type,
			Kind:      entry.Kind,
			Suggestion: &types.Suggestion{
				Action:   types.SuggestionChangeType,
				Resource: method.Resource,
				Type:     entry.Type,
				Method:   methodName,
			},
		})
		ok = false
	}

	var deps []types.ParamBinding
	for _, param := range method.Params {
		if diags.full() {
			return types.MethodBinding{}, false
		}
		if param.Owner != "" && param.Owner != decl.Name && param.Owner != module.Name {
			// Private resources are provider-local. Naming an
			// ancestor or sibling provider as the owner breaks that
			// encapsulation even when the unqualified name would
			// resolve.
			diags.add(types.Diagnostic{
				Rule:     types.RuleForeignParamReference,
				Subject:  decl.Name,
				Method:   methodName,
				Param:    param.Name,
				Conflict: param.Owner,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDropOwner,
					Resource: param.Name,
				},
			})
			ok = false
			continue
		}
		var resolved types.ResourceEntry
		var known bool
		if param.Owner == module.Name {
			// An explicit module qualifier bypasses provider
			// declarations and must land on a public resource.
			resolved, known = reg.Resolve(ModuleScope(module), param.Name)
		} else {
			resolved, known = reg.Resolve(scope, param.Name)
		}
		if !known {
			diags.add(types.Diagnostic{
				Rule:    types.RuleUnknownParamReference,
				Subject: decl.Name,
				Method:  methodName,
				Param:   param.Name,
			})
			ok = false
			continue
		}
		if param.Type.Declared() && !v.Oracle.IsCompatible(resolved.Type, param.Type) {
			diags.add(types.Diagnostic{
				Rule:      types.RuleParamTypeMismatch,
				Subject:   decl.Name,
				Method:    methodName,
				Param:     param.Name,
				Candidate: param.Type,
				Required:  resolved.Type,
				Kind:      resolved.Kind,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionChangeType,
					Resource: param.Name,
					Type:     resolved.Type,
				},
			})
			ok = false
			continue
		}
		deps = append(deps, types.ParamBinding{Param: param.Name, Resource: resolved})
	}
	if !ok {
		return types.MethodBinding{}, false
	}
	return types.MethodBinding{
		Resource:     method.Resource,
		Method:       methodName,
		Owner:        decl.Name,
		Returns:      method.Returns,
		Dependencies: deps,
	}, true
}

func sortedResourceNames(resources map[string]types.ResourceEntry) []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

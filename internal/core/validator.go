package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/rdarder/modular/internal/policies"
	"github.com/rdarder/modular/internal/ports"
	"github.com/rdarder/modular/internal/shared"
	"github.com/rdarder/modular/internal/types"
)

// Validator checks module and provider declarations against the
// declared type graph and an existing registry of validated
// descriptors. Validation is pure and synchronous: it reads immutable
// declarations and produces either a descriptor or diagnostics, never
// both.
type Validator struct {
	Oracle ports.TypeOracle
	Policy policies.Validation
}

func NewValidator(oracle ports.TypeOracle, policy policies.Validation) Validator {
	return Validator{Oracle: oracle, Policy: policy}
}

// ValidateModule checks a module declaration in isolation. Modules
// never depend on providers, so the registry is not consulted.
func (v Validator) ValidateModule(ctx context.Context, decl types.ModuleDecl) (types.ModuleDescriptor, []types.Diagnostic) {
	assert.NotEmpty(ctx, decl.Name, "module name must be set")
	diags := newCollector(v.Policy.Batch)
	entries := map[string]types.ResourceEntry{}

	for _, resource := range decl.Resources {
		if _, dup := entries[resource.Name]; dup {
			diags.add(types.Diagnostic{
				Rule:     types.RuleDuplicateResource,
				Subject:  decl.Name,
				Resource: resource.Name,
			})
		} else if resource.Ref != nil {
			diags.add(types.Diagnostic{
				Rule:     types.RuleAliasedResource,
				Subject:  decl.Name,
				Resource: resource.Name,
				Conflict: shared.Qualify(resource.Ref.Owner, resource.Ref.Name),
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareFresh,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     types.ResourceKindPublic,
				},
			})
		} else if !resource.Kind.ModuleKind() {
			diags.add(types.Diagnostic{
				Rule:     types.RuleInvalidModuleKind,
				Subject:  decl.Name,
				Resource: resource.Name,
				Kind:     resource.Kind,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareKind,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     types.ResourceKindPublic,
				},
			})
		} else {
			entries[resource.Name] = types.ResourceEntry{
				Name:  resource.Name,
				Type:  resource.Type,
				Kind:  moduleEntryKind(resource.Kind),
				Owner: decl.Name,
			}
		}
		if diags.full() {
			break
		}
	}
	if len(diags.all()) > 0 {
		return types.ModuleDescriptor{}, diags.all()
	}
	log.Ctx(ctx).Debug().Str("module", decl.Name).Int("resources", len(entries)).Msg("module validated")
	return types.ModuleDescriptor{
		Name:            decl.Name,
		Resources:       entries,
		DefaultProvider: decl.DefaultProvider,
	}, nil
}

// ValidateProvider runs the full rule set over a provider declaration.
// Structural rules are always first-failure; the remaining rules
// batch when the policy asks for it. A provider with any diagnostic
// yields no descriptor.
//
// The base provider, if named, must have a recorded validation
// outcome already: validation happens in declaration-dependency
// order, and a failed base short-circuits the subclass without
// evaluating its own rules.
func (v Validator) ValidateProvider(ctx context.Context, decl types.ProviderDecl, reg *Registry) (types.ProviderDescriptor, []types.Diagnostic, error) {
	assert.NotEmpty(ctx, decl.Name, "provider name must be set")
	if v.Oracle == nil || reg == nil {
		return types.ProviderDescriptor{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("validator requires a type oracle and a registry")
	}

	if decl.Base != "" {
		// A failed base makes every subclass diagnostic misleading;
		// the subclass is not evaluated until the base is fixed.
		if outcome, seen := reg.OutcomeOf(decl.Base); seen && !outcome.Valid() {
			return types.ProviderDescriptor{}, nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("base provider %s failed validation; fix it before validating %s", decl.Base, decl.Name))
		}
	}

	if decl.Module == "" {
		return fail(types.Diagnostic{
			Rule:       types.RuleMissingModule,
			Subject:    decl.Name,
			Suggestion: &types.Suggestion{Action: types.SuggestionSetModule},
		})
	}
	if !reg.IsModule(decl.Module) {
		return fail(types.Diagnostic{
			Rule:       types.RuleNotAModule,
			Subject:    decl.Name,
			Conflict:   decl.Module,
			Suggestion: &types.Suggestion{Action: types.SuggestionSetModule},
		})
	}
	module, err := reg.Module(decl.Module)
	if err != nil {
		return types.ProviderDescriptor{}, nil, err
	}

	var base *types.ProviderDescriptor
	if decl.Base != "" {
		baseDesc, err := reg.Provider(decl.Base)
		if err != nil {
			return fail(types.Diagnostic{
				Rule:     types.RuleBaseNotAProvider,
				Subject:  decl.Name,
				Conflict: decl.Base,
			})
		}
		if baseDesc.Module != decl.Module {
			return fail(types.Diagnostic{
				Rule:      types.RuleBaseModuleMismatch,
				Subject:   decl.Name,
				Conflict:  decl.Base,
				Required:  types.TypeRef{ID: baseDesc.Module},
				Candidate: types.TypeRef{ID: decl.Module},
			})
		}
		base = &baseDesc
	}

	diags := newCollector(v.Policy.Batch)
	own := v.collectOwnResources(decl, module, base, diags)
	if !diags.full() {
		v.checkRefinements(decl, own, base, diags)
	}

	resources := mergeScopes(decl.Name, module, base, own)
	var bindings map[string]types.MethodBinding
	if !diags.full() {
		bindings = v.bindMethods(decl, reg, module, base, resources, diags)
	}

	if all := diags.all(); len(all) > 0 {
		return types.ProviderDescriptor{}, all, nil
	}

	desc := types.ProviderDescriptor{
		Name:      decl.Name,
		Module:    decl.Module,
		Base:      baseChain(decl.Base, base),
		Resources: resources,
		Bindings:  bindings,
	}
	log.Ctx(ctx).Debug().
		Str("provider", decl.Name).
		Str("module", decl.Module).
		Int("resources", len(resources)).
		Int("bindings", len(bindings)).
		Msg("provider validated")
	return desc, nil, nil
}

func (v Validator) collectOwnResources(
	decl types.ProviderDecl,
	module types.ModuleDescriptor,
	base *types.ProviderDescriptor,
	diags *collector,
) map[string]types.ResourceEntry {
	own := map[string]types.ResourceEntry{}
	for _, resource := range decl.Resources {
		if diags.full() {
			break
		}
		if _, dup := own[resource.Name]; dup {
			diags.add(types.Diagnostic{
				Rule:     types.RuleDuplicateResource,
				Subject:  decl.Name,
				Resource: resource.Name,
			})
			continue
		}
		if resource.Ref != nil {
			diags.add(types.Diagnostic{
				Rule:     types.RuleAliasedResource,
				Subject:  decl.Name,
				Resource: resource.Name,
				Conflict: shared.Qualify(resource.Ref.Owner, resource.Ref.Name),
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareFresh,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     suggestedProviderKind(resource.Name, module),
				},
			})
			continue
		}
		if !resource.Kind.ProviderKind() {
			diags.add(types.Diagnostic{
				Rule:     types.RuleReservedKind,
				Subject:  decl.Name,
				Resource: resource.Name,
				Kind:     resource.Kind,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareKind,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     suggestedProviderKind(resource.Name, module),
				},
			})
			continue
		}

		moduleEntry, inModule := module.Resources[resource.Name]
		entry := types.ResourceEntry{
			Name:  resource.Name,
			Type:  resource.Type,
			Kind:  resource.Kind,
			Owner: decl.Name,
		}
		switch {
		case resource.Kind == types.ResourceKindPrivate && inModule:
			diags.add(types.Diagnostic{
				Rule:     types.RulePrivateShadowsModule,
				Subject:  decl.Name,
				Resource: resource.Name,
				Conflict: module.Name,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareKind,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     types.ResourceKindOverride,
				},
			})
			continue
		case resource.Kind == types.ResourceKindOverride && !inModule:
			diags.add(types.Diagnostic{
				Rule:     types.RuleOverrideWithoutTarget,
				Subject:  decl.Name,
				Resource: resource.Name,
				Conflict: module.Name,
				Suggestion: &types.Suggestion{
					Action:   types.SuggestionDeclareKind,
					Resource: resource.Name,
					Type:     resource.Type,
					Kind:     types.ResourceKindPrivate,
				},
			})
			continue
		case resource.Kind == types.ResourceKindOverride:
			if !v.Oracle.IsCompatible(resource.Type, moduleEntry.Type) {
				diags.add(types.Diagnostic{
					Rule:      types.RuleIncompatibleOverride,
					Subject:   decl.Name,
					Resource:  resource.Name,
					Candidate: resource.Type,
					Required:  moduleEntry.Type,
					Kind:      types.ResourceKindOverride,
					Conflict:  module.Name,
					Suggestion: &types.Suggestion{
						Action:   types.SuggestionChangeType,
						Resource: resource.Name,
						Type:     moduleEntry.Type,
						Kind:     types.ResourceKindOverride,
					},
				})
				continue
			}
			target := moduleEntry
			entry.Overrides = &target
		}

		if base != nil {
			if baseEntry, inherited := base.Resources[resource.Name]; inherited && baseEntry.Owner != module.Name {
				if !v.Oracle.IsCompatible(resource.Type, baseEntry.Type) {
					diags.add(types.Diagnostic{
						Rule:      types.RuleIncompatibleInherited,
						Subject:   decl.Name,
						Resource:  resource.Name,
						Candidate: resource.Type,
						Required:  baseEntry.Type,
						Kind:      resource.Kind,
						Conflict:  baseEntry.Owner,
						Suggestion: &types.Suggestion{
							Action:   types.SuggestionChangeType,
							Resource: resource.Name,
							Type:     baseEntry.Type,
							Kind:     resource.Kind,
						},
					})
					continue
				}
			}
		}
		own[resource.Name] = entry
	}
	return own
}

// checkRefinements enforces that a subclass narrowing an inherited
// resource also redeclares its provider method. The base method's
// return type was checked against the wider type and may no longer
// satisfy the narrowed one.
func (v Validator) checkRefinements(
	decl types.ProviderDecl,
	own map[string]types.ResourceEntry,
	base *types.ProviderDescriptor,
	diags *collector,
) {
	if base == nil {
		return
	}
	declared := map[string]struct{}{}
	for _, method := range decl.Methods {
		declared[method.Resource] = struct{}{}
	}
	for _, resource := range decl.Resources {
		name := resource.Name
		entry, kept := own[name]
		if !kept {
			continue
		}
		baseEntry, inherited := base.Resources[name]
		if !inherited || baseEntry.Owner == base.Module {
			continue
		}
		narrower := entry.Type.ID != baseEntry.Type.ID && v.Oracle.IsCompatible(entry.Type, baseEntry.Type)
		if !narrower {
			continue
		}
		if _, redeclared := declared[name]; redeclared {
			continue
		}
		diags.add(types.Diagnostic{
			Rule:      types.RuleMissingRefinement,
			Subject:   decl.Name,
			Resource:  name,
			Candidate: entry.Type,
			Required:  baseEntry.Type,
			Kind:      entry.Kind,
			Conflict:  baseEntry.Owner,
			Suggestion: &types.Suggestion{
				Action:   types.SuggestionAddMethod,
				Resource: name,
				Type:     entry.Type,
				Method:   shared.MethodName(name),
			},
		})
		if diags.full() {
			return
		}
	}
}

// mergeScopes builds a provider's full resolution map: module publics
// first, then inherited base declarations, then own declarations.
// Later layers shadow earlier ones by name.
func mergeScopes(
	provider string,
	module types.ModuleDescriptor,
	base *types.ProviderDescriptor,
	own map[string]types.ResourceEntry,
) map[string]types.ResourceEntry {
	merged := map[string]types.ResourceEntry{}
	for name, entry := range module.Resources {
		merged[name] = entry
	}
	if base != nil {
		for name, entry := range base.Resources {
			if entry.Owner != module.Name {
				merged[name] = entry
			}
		}
	}
	for name, entry := range own {
		merged[name] = entry
	}
	return merged
}

func baseChain(baseName string, base *types.ProviderDescriptor) []string {
	if base == nil {
		return nil
	}
	return append([]string{baseName}, base.Base...)
}

func moduleEntryKind(declared types.ResourceKind) types.ResourceKind {
	if declared == "" {
		return types.ResourceKindPublic
	}
	return declared
}

func suggestedProviderKind(name string, module types.ModuleDescriptor) types.ResourceKind {
	if _, ok := module.Resources[name]; ok {
		return types.ResourceKindOverride
	}
	return types.ResourceKindPrivate
}

func fail(diag types.Diagnostic) (types.ProviderDescriptor, []types.Diagnostic, error) {
	return types.ProviderDescriptor{}, []types.Diagnostic{diag}, nil
}

type collector struct {
	batch bool
	diags []types.Diagnostic
}

func newCollector(batch bool) *collector {
	return &collector{batch: batch}
}

func (c *collector) add(diag types.Diagnostic) {
	c.diags = append(c.diags, diag)
}

// full reports whether the pass should stop: first-failure policy and
// at least one diagnostic collected.
func (c *collector) full() bool {
	return !c.batch && len(c.diags) > 0
}

func (c *collector) all() []types.Diagnostic {
	return c.diags
}

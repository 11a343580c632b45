package app

import (
	"context"
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/rdarder/modular/internal/adapters"
	"github.com/rdarder/modular/internal/core"
	"github.com/rdarder/modular/internal/policies"
	"github.com/rdarder/modular/internal/types"
)

// Validate loads a declaration document and validates every module
// and provider in it, in declaration-dependency order: modules first,
// base providers before their subclasses. Diagnostics are collected
// and rendered; they are results, not errors. The returned error is
// reserved for failures of the run itself.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if strings.TrimSpace(req.Path) == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("declaration file path is required")
	}
	doc, err := s.Source.Load(req.Path)
	if err != nil {
		return ValidateResult{}, err
	}
	result, _, err := s.validateDocument(ctx, doc, s.requestPolicy(req))
	return result, err
}

func (s Service) requestPolicy(req ValidateRequest) policies.Validation {
	policy := s.Policy
	policy.Batch = policy.Batch || req.Batch
	if req.Partial {
		policy.RequireTotal = false
	}
	policy.AllowOverride = policy.AllowOverride || req.AllowOverride
	return policy
}

func (s Service) validateDocument(ctx context.Context, doc types.Document, policy policies.Validation) (ValidateResult, *core.Registry, error) {
	validator := core.NewValidator(adapters.TypeGraphOf(doc), policy)
	registry := core.NewRegistry()
	result := ValidateResult{Modules: len(doc.Modules), Providers: len(doc.Providers)}

	for _, module := range doc.Modules {
		desc, diags := validator.ValidateModule(ctx, module)
		if len(diags) > 0 {
			result.report(s, diags)
			continue
		}
		if err := registry.AddModule(desc); err != nil {
			return ValidateResult{}, nil, err
		}
	}

	for _, provider := range orderProviders(doc.Providers) {
		desc, diags, err := validator.ValidateProvider(ctx, provider, registry)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition {
				result.Skipped = append(result.Skipped, provider.Name)
				continue
			}
			return ValidateResult{}, nil, err
		}
		registry.RecordOutcome(provider.Name, core.Outcome{Descriptor: desc, Diagnostics: diags})
		if len(diags) > 0 {
			result.report(s, diags)
			continue
		}
		if err := registry.AddProvider(desc, policy.AllowOverride); err != nil {
			return ValidateResult{}, nil, err
		}
		result.Valid++
	}

	log.Ctx(ctx).Debug().
		Int("modules", result.Modules).
		Int("providers", result.Providers).
		Int("diagnostics", len(result.Diagnostics)).
		Msg("document validated")
	return result, registry, nil
}

func (r *ValidateResult) report(s Service, diags []types.Diagnostic) {
	for _, diag := range diags {
		r.Diagnostics = append(r.Diagnostics, RenderedDiagnostic{
			Diagnostic: diag,
			Message:    s.Reporter.Render(diag),
		})
	}
}

// orderProviders sorts providers so that every base precedes its
// subclasses. Bases not present in the document are left for the
// validator to diagnose; a base cycle degrades to declaration order.
func orderProviders(decls []types.ProviderDecl) []types.ProviderDecl {
	byName := map[string]types.ProviderDecl{}
	for _, decl := range decls {
		byName[decl.Name] = decl
	}
	var ordered []types.ProviderDecl
	emitted := map[string]struct{}{}
	pending := append([]types.ProviderDecl{}, decls...)
	for len(pending) > 0 {
		var rest []types.ProviderDecl
		progressed := false
		for _, decl := range pending {
			_, baseInDoc := byName[decl.Base]
			_, baseEmitted := emitted[decl.Base]
			if decl.Base == "" || !baseInDoc || baseEmitted {
				ordered = append(ordered, decl)
				emitted[decl.Name] = struct{}{}
				progressed = true
				continue
			}
			rest = append(rest, decl)
		}
		if !progressed {
			ordered = append(ordered, rest...)
			break
		}
		pending = rest
	}
	return ordered
}

// FailedValidation converts a dirty result into the error the CLI
// maps to an exit code.
func FailedValidation(result ValidateResult) error {
	if result.Clean() {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("validation failed").
		WithCause(errors.New(summary(result)))
}

func summary(result ValidateResult) string {
	parts := []string{}
	for _, rendered := range result.Diagnostics {
		parts = append(parts, rendered.Diagnostic.String())
	}
	for _, skipped := range result.Skipped {
		parts = append(parts, skipped+": skipped, base provider failed")
	}
	return strings.Join(parts, "; ")
}

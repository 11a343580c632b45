package adapters

import (
	"fmt"
	"strings"

	"github.com/rdarder/modular/internal/shared"
	"github.com/rdarder/modular/internal/types"
)

// TextReporter renders structured diagnostics into the example-bearing
// prose shown to developers. Every data field comes from the
// diagnostic; the reporter owns only the wording.
type TextReporter struct{}

func NewTextReporter() TextReporter {
	return TextReporter{}
}

func (r TextReporter) Render(diag types.Diagnostic) string {
	var b strings.Builder
	b.WriteString(r.explain(diag))
	if diag.Suggestion != nil {
		b.WriteString("\n")
		b.WriteString(r.suggest(diag))
	}
	return b.String()
}

func (r TextReporter) explain(diag types.Diagnostic) string {
	switch diag.Rule {
	case types.RuleMissingModule:
		return fmt.Sprintf("Provider '%s' was declared without a target module. Every provider must state the module it provides for.", diag.Subject)
	case types.RuleNotAModule:
		return fmt.Sprintf("Provider '%s' provides for '%s', but '%s' is not a module.", diag.Subject, diag.Conflict, diag.Conflict)
	case types.RuleBaseNotAProvider:
		return fmt.Sprintf("Provider '%s' extends '%s', but '%s' is not a provider.", diag.Subject, diag.Conflict, diag.Conflict)
	case types.RuleBaseModuleMismatch:
		return fmt.Sprintf("Provider '%s' provides for '%s', but its base provider '%s' provides for '%s'. A provider and its base must target the same module.",
			diag.Subject, diag.Candidate.ID, diag.Conflict, diag.Required.ID)
	case types.RuleReservedKind:
		return fmt.Sprintf("Provider '%s' declares resource '%s' with the module-only kind '%s'. Provider resources must be declared as '%s' or '%s'.",
			diag.Subject, diag.Resource, diag.Kind, types.ResourceKindOverride, types.ResourceKindPrivate)
	case types.RuleInvalidModuleKind:
		return fmt.Sprintf("Module '%s' declares resource '%s' with provider-only kind '%s'. Module resources are always public.",
			diag.Subject, diag.Resource, diag.Kind)
	case types.RuleDuplicateResource:
		return fmt.Sprintf("'%s' declares resource '%s' more than once.", diag.Subject, diag.Resource)
	case types.RuleAliasedResource:
		return fmt.Sprintf("'%s' declares resource '%s' as a reference to the existing resource '%s'. Resources must be declared fresh, even when their shape mirrors an existing one.",
			diag.Subject, diag.Resource, diag.Conflict)
	case types.RuleOverrideWithoutTarget:
		return fmt.Sprintf("Provider '%s' declares '%s' as an override, but module '%s' has no resource named '%s'.",
			diag.Subject, diag.Resource, diag.Conflict, diag.Resource)
	case types.RulePrivateShadowsModule:
		return fmt.Sprintf("Provider '%s' declares private resource '%s', which would occlude the module resource '%s'.",
			diag.Subject, diag.Resource, shared.Qualify(diag.Conflict, diag.Resource))
	case types.RuleIncompatibleInherited:
		return fmt.Sprintf("Provider '%s' redeclares resource '%s' as '%s', which is not compatible with '%s' inherited from '%s'.",
			diag.Subject, diag.Resource, diag.Candidate, diag.Required, diag.Conflict)
	case types.RuleForeignParamReference:
		return fmt.Sprintf("Method '%s' of provider '%s' declares parameter '%s' as a resource of '%s'. Provider resources are provider-local; reference the resource unqualified or redeclare it.",
			diag.Method, diag.Subject, diag.Param, diag.Conflict)
	case types.RuleUnknownParamReference:
		return fmt.Sprintf("Method '%s' of provider '%s' declares parameter '%s', which matches no resource in the provider or its module.",
			diag.Method, diag.Subject, diag.Param)
	case types.RuleParamTypeMismatch:
		return fmt.Sprintf("Parameter '%s' of method '%s' in provider '%s' is declared as '%s', but the resource it names is a '%s'.",
			diag.Param, diag.Method, diag.Subject, diag.Candidate, diag.Required)
	case types.RuleIncompatibleOverride:
		return fmt.Sprintf("Provider '%s' overrides resource '%s' with type '%s', which is not compatible with the module's declared type '%s'.",
			diag.Subject, diag.Resource, diag.Candidate, diag.Required)
	case types.RuleIncompatibleReturnType:
		return fmt.Sprintf("Method '%s' of provider '%s' returns '%s', but the %s resource '%s' requires '%s'.",
			diag.Method, diag.Subject, diag.Candidate, diag.Kind, diag.Resource, diag.Required)
	case types.RuleMissingRefinement:
		return fmt.Sprintf("Provider '%s' narrows inherited resource '%s' from '%s' to '%s' but does not redeclare '%s'. The inherited method was checked against the wider type.",
			diag.Subject, diag.Resource, diag.Required, diag.Candidate, shared.MethodName(diag.Resource))
	case types.RuleDanglingMethod:
		return fmt.Sprintf("Provider '%s' declares method '%s', which matches no resource it could provide.",
			diag.Subject, diag.Method)
	case types.RuleUnboundResource:
		return fmt.Sprintf("Provider '%s' leaves resource '%s' (%s) unbound: no declared or inherited method provides it.",
			diag.Subject, diag.Resource, diag.Kind)
	default:
		return diag.String()
	}
}

func (r TextReporter) suggest(diag types.Diagnostic) string {
	s := diag.Suggestion
	switch s.Action {
	case types.SuggestionSetModule:
		return fmt.Sprintf("Declare the provider's target module:\n\n    %s(module=<module>)", diag.Subject)
	case types.SuggestionDeclareKind, types.SuggestionDeclareFresh:
		return fmt.Sprintf("Declare the resource fresh:\n\n    %s = Resource(%s, %s)", s.Resource, s.Type.ID, s.Kind)
	case types.SuggestionChangeType:
		if s.Method != "" {
			return fmt.Sprintf("Return a '%s' (or a subtype) from '%s'.", s.Type, s.Method)
		}
		return fmt.Sprintf("Use type '%s' (or a subtype) for '%s'.", s.Type, s.Resource)
	case types.SuggestionAddMethod:
		return fmt.Sprintf("Add a provider method:\n\n    %s(...) -> %s", s.Method, s.Type)
	case types.SuggestionRemoveMethod:
		return fmt.Sprintf("Remove '%s' or declare the resource it should provide.", s.Method)
	case types.SuggestionDropOwner:
		return fmt.Sprintf("Reference '%s' unqualified so it resolves through the provider's own scope.", s.Resource)
	default:
		return ""
	}
}

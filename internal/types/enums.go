package types

type ResourceKind string

const (
	// ResourceKindModule is the reserved marker kind carried by
	// module-owned resources. Providers may never declare it.
	ResourceKindModule   ResourceKind = "module"
	ResourceKindPublic   ResourceKind = "public"
	ResourceKindOverride ResourceKind = "override"
	ResourceKindPrivate  ResourceKind = "private"
)

// ModuleKind reports whether the kind is legal on a module resource
// declaration. An empty kind defaults to public.
func (k ResourceKind) ModuleKind() bool {
	return k == ResourceKindModule || k == ResourceKindPublic || k == ""
}

// ProviderKind reports whether the kind is legal on a provider
// resource declaration.
func (k ResourceKind) ProviderKind() bool {
	return k == ResourceKindOverride || k == ResourceKindPrivate
}

type RuleID string

const (
	RuleMissingModule          RuleID = "missing-module"
	RuleNotAModule             RuleID = "not-a-module"
	RuleBaseModuleMismatch     RuleID = "base-module-mismatch"
	RuleBaseNotAProvider       RuleID = "base-not-a-provider"
	RuleReservedKind           RuleID = "reserved-resource-kind"
	RuleInvalidModuleKind      RuleID = "invalid-module-resource-kind"
	RuleDuplicateResource      RuleID = "duplicate-resource"
	RuleAliasedResource        RuleID = "aliased-resource"
	RuleOverrideWithoutTarget  RuleID = "override-without-module-resource"
	RulePrivateShadowsModule   RuleID = "private-shadows-module-resource"
	RuleIncompatibleInherited  RuleID = "incompatible-inherited-resource"
	RuleForeignParamReference  RuleID = "foreign-param-reference"
	RuleUnknownParamReference  RuleID = "unknown-param-reference"
	RuleParamTypeMismatch      RuleID = "param-type-mismatch"
	RuleIncompatibleOverride   RuleID = "incompatible-override"
	RuleIncompatibleReturnType RuleID = "incompatible-return-type"
	RuleMissingRefinement      RuleID = "missing-refinement"
	RuleDanglingMethod         RuleID = "dangling-method"
	RuleUnboundResource        RuleID = "unbound-resource"
)

type RuleCategory string

const (
	CategoryStructural    RuleCategory = "structural"
	CategoryDeclarational RuleCategory = "declarational"
	CategoryScoping       RuleCategory = "scoping"
	CategoryType          RuleCategory = "type"
	CategoryRefinement    RuleCategory = "refinement"
	CategoryCompleteness  RuleCategory = "completeness"
)

func (r RuleID) Category() RuleCategory {
	switch r {
	case RuleMissingModule, RuleNotAModule, RuleBaseModuleMismatch, RuleBaseNotAProvider:
		return CategoryStructural
	case RuleReservedKind, RuleInvalidModuleKind, RuleDuplicateResource,
		RuleAliasedResource, RuleOverrideWithoutTarget, RulePrivateShadowsModule:
		return CategoryDeclarational
	case RuleForeignParamReference, RuleUnknownParamReference:
		return CategoryScoping
	case RuleIncompatibleOverride, RuleIncompatibleReturnType,
		RuleIncompatibleInherited, RuleParamTypeMismatch:
		return CategoryType
	case RuleMissingRefinement:
		return CategoryRefinement
	case RuleUnboundResource, RuleDanglingMethod:
		return CategoryCompleteness
	default:
		return ""
	}
}

// Fatal rules abort the validation of a provider before any resource
// or method is examined, regardless of the batching policy.
func (r RuleID) Fatal() bool {
	return r.Category() == CategoryStructural
}

type SuggestionAction string

const (
	SuggestionDeclareKind  SuggestionAction = "declare-with-kind"
	SuggestionDeclareFresh SuggestionAction = "declare-fresh-resource"
	SuggestionChangeType   SuggestionAction = "change-type"
	SuggestionAddMethod    SuggestionAction = "add-provider-method"
	SuggestionRemoveMethod SuggestionAction = "remove-provider-method"
	SuggestionDropOwner    SuggestionAction = "drop-owner-qualifier"
	SuggestionSetModule    SuggestionAction = "set-target-module"
)

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdarder/modular/internal/types"
)

func TestDanglingMethod(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, nil)
	decl := types.ProviderDecl{
		Name:   "P",
		Module: "M",
		Methods: []types.MethodDecl{
			{Resource: "ghost", Returns: types.TypeRef{ID: "int"}},
		},
	}
	_, diags, err := v.ValidateProvider(context.Background(), decl, reg)
	require.NoError(t, err)
	diag := singleRule(t, diags, types.RuleDanglingMethod)
	require.Equal(t, "provide_ghost", diag.Method)
	require.Equal(t, types.SuggestionRemoveMethod, diag.Suggestion.Action)
}

func TestDuplicateMethodDeclaration(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, nil)
	decl := types.ProviderDecl{
		Name:   "P",
		Module: "M",
		Methods: []types.MethodDecl{
			{Resource: "a", Returns: types.TypeRef{ID: "int"}},
			{Resource: "a", Returns: types.TypeRef{ID: "fancyint"}},
		},
	}
	_, diags, err := v.ValidateProvider(context.Background(), decl, reg)
	require.NoError(t, err)
	diag := singleRule(t, diags, types.RuleDanglingMethod)
	require.Equal(t, "a", diag.Resource)
}

func TestUnboundResourceUnderTotality(t *testing.T) {
	decl := types.ProviderDecl{Name: "P", Module: "M"}

	strict := testValidator(false)
	reg := registryWith(t, strict, []types.ModuleDecl{moduleM()}, nil)
	_, diags, err := strict.ValidateProvider(context.Background(), decl, reg)
	require.NoError(t, err)
	diag := singleRule(t, diags, types.RuleUnboundResource)
	require.Equal(t, "a", diag.Resource)
	require.Equal(t, types.ResourceKindPublic, diag.Kind)
	require.Equal(t, "provide_a", diag.Suggestion.Method)

	partial := strict
	partial.Policy.RequireTotal = false
	regPartial := registryWith(t, partial, []types.ModuleDecl{moduleM()}, nil)
	desc, diags, err := partial.ValidateProvider(context.Background(), decl, regPartial)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, desc.Bindings)
}

func TestInheritedBindingsCarryOver(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, []types.ProviderDecl{basePDecl()})

	sub := types.ProviderDecl{Name: "SubP", Module: "M", Base: "BaseP"}
	desc, diags, err := v.ValidateProvider(context.Background(), sub, reg)
	require.NoError(t, err)
	require.Empty(t, diags)

	// Both bindings come from the base untouched.
	require.Equal(t, "BaseP", desc.Bindings["a"].Owner)
	require.Equal(t, "BaseP", desc.Bindings["b"].Owner)
	require.Equal(t, []string{"BaseP"}, desc.Base)

	// The inherited private resource stays resolvable in the subclass
	// scope.
	entry, ok := desc.Resources["b"]
	require.True(t, ok)
	require.Equal(t, "BaseP", entry.Owner)
}

func TestInheritedBindingInvalidatedByOverride(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, []types.ProviderDecl{basePDecl()})

	// The base bound provide_a against the module's int; narrowing the
	// resource here makes that method insufficient.
	sub := types.ProviderDecl{
		Name:   "SubP",
		Module: "M",
		Base:   "BaseP",
		Resources: []types.ResourceDecl{
			{Name: "a", Type: types.TypeRef{ID: "fancyint"}, Kind: types.ResourceKindOverride},
		},
	}
	_, diags, err := v.ValidateProvider(context.Background(), sub, reg)
	require.NoError(t, err)
	diag := singleRule(t, diags, types.RuleMissingRefinement)
	require.Equal(t, "a", diag.Resource)
	require.Equal(t, "fancyint", diag.Candidate.ID)
	require.Equal(t, "int", diag.Required.ID)
	require.Equal(t, "BaseP", diag.Conflict)
	require.Equal(t, "provide_a", diag.Suggestion.Method)

	// Redeclaring the method with a refined return type resolves it.
	refined := sub
	refined.Methods = []types.MethodDecl{
		{Resource: "a", Returns: types.TypeRef{ID: "fancyint"}},
	}
	desc, diags, err := v.ValidateProvider(context.Background(), refined, reg)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, "SubP", desc.Bindings["a"].Owner)
	require.Equal(t, "fancyint", desc.Bindings["a"].Returns.ID)
}

func TestInheritedBindingIncompatibleSiblingOverride(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, []types.ProviderDecl{
		// The base's method covariantly returns a subtype of the
		// module's int.
		{
			Name:   "BaseP",
			Module: "M",
			Methods: []types.MethodDecl{
				{Resource: "a", Returns: types.TypeRef{ID: "fancyint"}},
			},
		},
	})

	// mixed and fancyint are both subtypes of int but unrelated to
	// each other; the override passes, the inherited method cannot
	// satisfy it.
	sub := types.ProviderDecl{
		Name:   "SubP",
		Module: "M",
		Base:   "BaseP",
		Resources: []types.ResourceDecl{
			{Name: "a", Type: types.TypeRef{ID: "mixed"}, Kind: types.ResourceKindOverride},
		},
	}
	_, diags, err := v.ValidateProvider(context.Background(), sub, reg)
	require.NoError(t, err)
	diag := singleRule(t, diags, types.RuleMissingRefinement)
	require.Equal(t, "fancyint", diag.Required.ID)
	require.Equal(t, "mixed", diag.Candidate.ID)
}

func TestBindingRecordsDependencies(t *testing.T) {
	v := testValidator(false)
	reg := registryWith(t, v, []types.ModuleDecl{moduleM()}, nil)
	desc, diags, err := v.ValidateProvider(context.Background(), basePDecl(), reg)
	require.NoError(t, err)
	require.Empty(t, diags)

	binding := desc.Bindings["a"]
	require.Equal(t, "provide_a", binding.Method)
	require.Len(t, binding.Dependencies, 1)
	require.Equal(t, "b", binding.Dependencies[0].Param)
	require.Equal(t, types.ResourceKindPrivate, binding.Dependencies[0].Resource.Kind)
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"github.com/rdarder/modular/internal/types"
)

const cleanDoc = `
types:
  - id: int
  - id: fancyint
    parents: [int]
modules:
  - name: M
    resources:
      - name: a
        type: {id: int}
providers:
  - name: P
    module: M
    resources:
      - name: b
        type: {id: int}
        kind: private
    methods:
      - resource: a
        returns: {id: fancyint}
        params:
          - name: b
      - resource: b
        returns: {id: int}
`

const inheritanceDoc = `
types:
  - id: int
modules:
  - name: M
    resources:
      - name: a
        type: {id: int}
providers:
  - name: SubP
    module: M
    base: BaseP
  - name: BaseP
    module: M
    methods:
      - resource: a
        returns: {id: int}
`

const dirtyDoc = `
types:
  - id: int
modules:
  - name: M
    resources:
      - name: a
        type: {id: int}
providers:
  - name: Bad
  - name: SubBad
    module: M
    base: Bad
`

const unboundDoc = `
types:
  - id: int
modules:
  - name: M
    resources:
      - name: a
        type: {id: int}
providers:
  - name: P
    module: M
`

const cyclicDoc = `
types:
  - id: int
modules:
  - name: M
    resources:
      - name: a
        type: {id: int}
providers:
  - name: P
    module: M
    resources:
      - name: b
        type: {id: int}
        kind: private
    methods:
      - resource: a
        returns: {id: int}
        params:
          - name: b
      - resource: b
        returns: {id: int}
        params:
          - name: a
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modular.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateRequiresPath(t *testing.T) {
	_, err := NewService().Validate(context.Background(), ValidateRequest{})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestValidateCleanDocument(t *testing.T) {
	result, err := NewService().Validate(context.Background(), ValidateRequest{Path: writeDoc(t, cleanDoc)})
	require.NoError(t, err)
	require.True(t, result.Clean())
	require.Equal(t, 1, result.Modules)
	require.Equal(t, 1, result.Providers)
	require.Equal(t, 1, result.Valid)
	require.NoError(t, FailedValidation(result))
}

func TestValidateOrdersBasesBeforeSubclasses(t *testing.T) {
	// SubP is declared before its base; a clean result means the base
	// was validated and registered first.
	result, err := NewService().Validate(context.Background(), ValidateRequest{
		Path:          writeDoc(t, inheritanceDoc),
		AllowOverride: true,
	})
	require.NoError(t, err)
	require.True(t, result.Clean())
	require.Equal(t, 2, result.Valid)
}

func TestValidateReportsDiagnosticsAndSkips(t *testing.T) {
	result, err := NewService().Validate(context.Background(), ValidateRequest{Path: writeDoc(t, dirtyDoc)})
	require.NoError(t, err)
	require.False(t, result.Clean())
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, types.RuleMissingModule, result.Diagnostics[0].Diagnostic.Rule)
	require.NotEmpty(t, result.Diagnostics[0].Message)
	require.Equal(t, []string{"SubBad"}, result.Skipped)
	require.Equal(t, 0, result.Valid)

	err = FailedValidation(result)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestValidatePartialAllowsUnboundResources(t *testing.T) {
	path := writeDoc(t, unboundDoc)
	svc := NewService()

	strict, err := svc.Validate(context.Background(), ValidateRequest{Path: path})
	require.NoError(t, err)
	require.Len(t, strict.Diagnostics, 1)
	require.Equal(t, types.RuleUnboundResource, strict.Diagnostics[0].Diagnostic.Rule)

	partial, err := svc.Validate(context.Background(), ValidateRequest{Path: path, Partial: true})
	require.NoError(t, err)
	require.True(t, partial.Clean())
}

func TestInspectSummarizesProviders(t *testing.T) {
	result, err := NewService().Inspect(context.Background(), InspectRequest{Path: writeDoc(t, cleanDoc)})
	require.NoError(t, err)
	require.Equal(t, []string{"M"}, result.Modules)
	require.Len(t, result.Providers, 1)

	provider := result.Providers[0]
	require.Equal(t, "P", provider.Name)
	require.Equal(t, "M", provider.Module)
	require.Empty(t, provider.Base)
	require.Equal(t, 1, provider.Own)
	require.Equal(t, 0, provider.Inherited)
	require.Equal(t, 2, provider.Bindings)
}

func TestInspectRejectsDirtyDocument(t *testing.T) {
	_, err := NewService().Inspect(context.Background(), InspectRequest{Path: writeDoc(t, dirtyDoc)})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestGraphSolvesCleanDocument(t *testing.T) {
	result, err := NewService().Graph(context.Background(), GraphRequest{Path: writeDoc(t, cleanDoc)})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"M": "P"}, result.Providers)

	positions := map[string]int{}
	for i, node := range result.Order {
		positions[node] = i
	}
	require.Contains(t, positions, "P.a")
	require.Contains(t, positions, "P.b")
	require.Less(t, positions["P.b"], positions["P.a"])
}

func TestGraphRejectsCycles(t *testing.T) {
	_, err := NewService().Graph(context.Background(), GraphRequest{Path: writeDoc(t, cyclicDoc)})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	require.Contains(t, err.Error(), "circular resource dependency")
}

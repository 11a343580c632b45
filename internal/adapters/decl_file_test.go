package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"github.com/rdarder/modular/internal/types"
)

const declFixture = `
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
        type: {id: fancyint}
        kind: private
    methods:
      - resource: a
        returns: {id: int}
        params:
          - name: b
            type: {id: int}
      - resource: b
        returns: {id: fancyint}
`

func writeDecl(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modular.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDeclarationFile(t *testing.T) {
	doc, err := NewDeclFileAdapter().Load(writeDecl(t, declFixture))
	require.NoError(t, err)

	require.Len(t, doc.Types, 2)
	require.Equal(t, []string{"int"}, doc.Types[1].Parents)

	require.Len(t, doc.Modules, 1)
	require.Equal(t, "M", doc.Modules[0].Name)
	require.Equal(t, types.TypeRef{ID: "int"}, doc.Modules[0].Resources[0].Type)

	require.Len(t, doc.Providers, 1)
	provider := doc.Providers[0]
	require.Equal(t, "M", provider.Module)
	require.Equal(t, types.ResourceKindPrivate, provider.Resources[0].Kind)
	require.Len(t, provider.Methods, 2)
	require.Equal(t, "b", provider.Methods[0].Params[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewDeclFileAdapter().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadMalformedYaml(t *testing.T) {
	_, err := NewDeclFileAdapter().Load(writeDecl(t, "modules: ["))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTypeGraphOf(t *testing.T) {
	doc, err := NewDeclFileAdapter().Load(writeDecl(t, declFixture))
	require.NoError(t, err)
	graph := TypeGraphOf(doc)
	require.True(t, graph.IsCompatible(types.TypeRef{ID: "fancyint"}, types.TypeRef{ID: "int"}))
	require.False(t, graph.IsCompatible(types.TypeRef{ID: "int"}, types.TypeRef{ID: "fancyint"}))
}

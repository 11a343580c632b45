package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"github.com/rdarder/modular/internal/core"
	"github.com/rdarder/modular/internal/types"
)

// DeclFileAdapter loads declaration documents from YAML files. This
// is the fixture-loading surface around the core; the core itself
// never touches source syntax.
type DeclFileAdapter struct{}

func NewDeclFileAdapter() DeclFileAdapter {
	return DeclFileAdapter{}
}

func (a DeclFileAdapter) Load(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("declaration file not found").
			WithCause(err)
	}
	var doc types.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse declaration yaml").
			WithCause(err)
	}
	return doc, nil
}

// TypeGraphOf builds the nominal type graph from a document's type
// section.
func TypeGraphOf(doc types.Document) *core.TypeGraph {
	graph := core.NewTypeGraph()
	for _, decl := range doc.Types {
		graph.Declare(decl.ID, decl.Parents...)
	}
	return graph
}

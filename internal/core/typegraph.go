package core

import (
	"github.com/rdarder/modular/internal/types"
)

// TypeGraph is an explicit nominal type hierarchy. Compatibility is a
// pure walk over declared parent edges; there is no structural or
// duck typing.
type TypeGraph struct {
	parents map[string][]string
}

func NewTypeGraph() *TypeGraph {
	return &TypeGraph{parents: map[string][]string{}}
}

// Declare registers a type id with its direct parents. Redeclaring an
// id replaces its parent list.
func (g *TypeGraph) Declare(id string, parents ...string) {
	g.parents[id] = parents
}

func (g *TypeGraph) Declared(id string) bool {
	_, ok := g.parents[id]
	return ok
}

// IsCompatible reports whether candidate may stand in for required:
// the same id, or a transitive descendant of it. An invariant flag on
// either side forces exact equality. Undeclared ids only match
// themselves.
func (g *TypeGraph) IsCompatible(candidate types.TypeRef, required types.TypeRef) bool {
	if candidate.ID == required.ID {
		return true
	}
	if candidate.Invariant || required.Invariant {
		return false
	}
	return g.derives(candidate.ID, required.ID, map[string]struct{}{})
}

// IsNarrower reports whether candidate is a strict subtype of
// required: compatible but not the same id.
func (g *TypeGraph) IsNarrower(candidate types.TypeRef, required types.TypeRef) bool {
	return candidate.ID != required.ID && g.IsCompatible(candidate, required)
}

func (g *TypeGraph) derives(id string, ancestor string, seen map[string]struct{}) bool {
	if _, ok := seen[id]; ok {
		return false
	}
	seen[id] = struct{}{}
	for _, parent := range g.parents[id] {
		if parent == ancestor || g.derives(parent, ancestor, seen) {
			return true
		}
	}
	return false
}

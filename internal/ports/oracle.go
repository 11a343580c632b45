package ports

import "github.com/rdarder/modular/internal/types"

// TypeOracle answers nominal subtype questions over the declared type
// graph. IsCompatible reports whether candidate may stand in wherever
// required is expected (equal or covariant subtype).
type TypeOracle interface {
	IsCompatible(candidate types.TypeRef, required types.TypeRef) bool
}

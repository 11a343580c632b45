package ports

import "github.com/rdarder/modular/internal/types"

type DeclSourcePort interface {
	Load(path string) (types.Document, error)
}

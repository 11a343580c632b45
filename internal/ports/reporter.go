package ports

import "github.com/rdarder/modular/internal/types"

// ReporterPort renders structured diagnostics for humans. The core
// supplies every field the reporter needs and owns none of the
// formatting.
type ReporterPort interface {
	Render(diag types.Diagnostic) string
}

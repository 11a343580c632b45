package app

import "github.com/rdarder/modular/internal/types"

type ValidateRequest struct {
	Path          string
	Batch         bool
	Partial       bool
	AllowOverride bool
}

// RenderedDiagnostic pairs a structured diagnostic with its reported
// form.
type RenderedDiagnostic struct {
	Diagnostic types.Diagnostic
	Message    string
}

type ValidateResult struct {
	Modules   int
	Providers int
	Valid     int
	// Skipped lists providers that were not evaluated because their
	// base provider failed validation.
	Skipped     []string
	Diagnostics []RenderedDiagnostic
}

func (r ValidateResult) Clean() bool {
	return len(r.Diagnostics) == 0 && len(r.Skipped) == 0
}

type InspectRequest struct {
	Path string
}

type ProviderSummary struct {
	Name      string
	Module    string
	Base      []string
	Own       int
	Inherited int
	Bindings  int
}

type InspectResult struct {
	Modules   []string
	Providers []ProviderSummary
}

type GraphRequest struct {
	Path    string
	Partial bool
}

type GraphResult struct {
	Providers map[string]string
	Order     []string
}

package policies

// Validation collects the policy knobs the validator and binder
// accept. Batch switches from first-failure to collecting every
// diagnostic of a validation pass; it changes cardinality, never
// content. RequireTotal demands a provider method for every resource
// the provider is responsible for; partial providers are legal when a
// container composes them with others. AllowOverride permits
// re-registering a provider for an already-provided module.
type Validation struct {
	Batch         bool
	RequireTotal  bool
	AllowOverride bool
}

func Default() Validation {
	return Validation{RequireTotal: true}
}

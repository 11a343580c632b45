package types

// ResourceEntry is a resolved resource inside a validated descriptor.
// Owner names the module or provider the entry was declared on, which
// for inherited entries differs from the provider whose descriptor
// holds it. Overrides points at the module entry an override replaces.
type ResourceEntry struct {
	Name      string
	Type      TypeRef
	Kind      ResourceKind
	Owner     string
	Overrides *ResourceEntry
}

// Target returns the entry a binding ultimately satisfies: the
// overridden module resource for overrides, the entry itself
// otherwise.
func (e ResourceEntry) Target() ResourceEntry {
	if e.Overrides != nil {
		return *e.Overrides
	}
	return e
}

type ParamBinding struct {
	Param    string
	Resource ResourceEntry
}

// MethodBinding ties a resource to the provider method that supplies
// it, together with the resources the method's parameters resolve to.
type MethodBinding struct {
	Resource     string
	Method       string
	Owner        string
	Returns      TypeRef
	Dependencies []ParamBinding
}

type ModuleDescriptor struct {
	Name            string
	Resources       map[string]ResourceEntry
	DefaultProvider string
}

// ProviderDescriptor is the immutable output of a successful provider
// validation. Resources holds the full resolved scope: own
// declarations, inherited base declarations, and the target module's
// public resources. Base lists the validated base chain, nearest
// first.
type ProviderDescriptor struct {
	Name      string
	Module    string
	Base      []string
	Resources map[string]ResourceEntry
	Bindings  map[string]MethodBinding
}

// Own reports whether the named resource was declared by this
// provider rather than inherited or borrowed from the module.
func (p ProviderDescriptor) Own(name string) bool {
	entry, ok := p.Resources[name]
	return ok && entry.Owner == p.Name
}

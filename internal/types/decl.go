package types

// ResourceRef names an already-declared resource by its owner and
// name. Its only use is detecting aliased declarations: a resource
// must always be declared fresh, never as a reference to an existing
// one.
type ResourceRef struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

type ResourceDecl struct {
	Name string       `yaml:"name"`
	Type TypeRef      `yaml:"type"`
	Kind ResourceKind `yaml:"kind,omitempty"`

	// Ref marks the declaration as an alias of an existing resource.
	// Aliases are always rejected during validation.
	Ref *ResourceRef `yaml:"ref,omitempty"`
}

// ParamDecl is a provider-method parameter. Owner, when set, records
// that the declaration names the resource as belonging to a specific
// provider or module rather than leaving it to scope resolution.
type ParamDecl struct {
	Name  string  `yaml:"name"`
	Type  TypeRef `yaml:"type"`
	Owner string  `yaml:"owner,omitempty"`
}

// MethodDecl describes a provider method. The callable name follows
// the provide_<resource> convention and is derived, not stored.
type MethodDecl struct {
	Resource string      `yaml:"resource"`
	Returns  TypeRef     `yaml:"returns"`
	Params   []ParamDecl `yaml:"params,omitempty"`
}

type ModuleDecl struct {
	Name            string         `yaml:"name"`
	Resources       []ResourceDecl `yaml:"resources"`
	DefaultProvider string         `yaml:"default_provider,omitempty"`
}

type ProviderDecl struct {
	Name      string         `yaml:"name"`
	Module    string         `yaml:"module"`
	Base      string         `yaml:"base,omitempty"`
	Resources []ResourceDecl `yaml:"resources,omitempty"`
	Methods   []MethodDecl   `yaml:"methods,omitempty"`
}

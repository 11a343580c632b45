package types

// TypeDecl declares a node of the nominal type graph. Parents list
// the types this one may substitute for.
type TypeDecl struct {
	ID      string   `yaml:"id"`
	Parents []string `yaml:"parents,omitempty"`
}

// Document is a full declaration set as loaded from a declaration
// file: the type graph plus modules and providers, already parsed out
// of whatever surface syntax produced them. The core never touches
// source syntax.
type Document struct {
	Types     []TypeDecl     `yaml:"types"`
	Modules   []ModuleDecl   `yaml:"modules"`
	Providers []ProviderDecl `yaml:"providers"`
}

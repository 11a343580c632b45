package types

// TypeRef is a nominal reference into the declared type graph. The
// compatibility oracle only ever sees these values; it never inspects
// Go types. Invariant disables covariant substitution for the
// referenced position, forcing an exact match.
type TypeRef struct {
	ID        string `yaml:"id"`
	Invariant bool   `yaml:"invariant,omitempty"`
}

func (t TypeRef) Declared() bool {
	return t.ID != ""
}

func (t TypeRef) String() string {
	if t.Invariant {
		return t.ID + "!"
	}
	return t.ID
}

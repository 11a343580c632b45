package types

import "fmt"

// Diagnostic is the structured result of a failed validation rule.
// It carries every field a reporter needs to render an explanation;
// it does no rendering itself.
type Diagnostic struct {
	Rule    RuleID `yaml:"rule"`
	Subject string `yaml:"subject"`

	Resource string `yaml:"resource,omitempty"`
	Method   string `yaml:"method,omitempty"`
	Param    string `yaml:"param,omitempty"`

	// Candidate and Required hold the conflicting types for type
	// rules; Kind holds the resource kind involved, Conflict the name
	// of the other entity in the conflict (base provider, module,
	// aliased resource owner).
	Candidate TypeRef      `yaml:"candidate,omitempty"`
	Required  TypeRef      `yaml:"required,omitempty"`
	Kind      ResourceKind `yaml:"kind,omitempty"`
	Conflict  string       `yaml:"conflict,omitempty"`

	Suggestion *Suggestion `yaml:"suggestion,omitempty"`
}

// Suggestion is a machine-readable corrected form attached to a
// diagnostic. Rendering it into prose is the reporter's job.
type Suggestion struct {
	Action   SuggestionAction `yaml:"action"`
	Resource string           `yaml:"resource,omitempty"`
	Type     TypeRef          `yaml:"type,omitempty"`
	Kind     ResourceKind     `yaml:"kind,omitempty"`
	Method   string           `yaml:"method,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Resource != "" {
		return fmt.Sprintf("%s: %s (resource %s)", d.Subject, d.Rule, d.Resource)
	}
	return fmt.Sprintf("%s: %s", d.Subject, d.Rule)
}

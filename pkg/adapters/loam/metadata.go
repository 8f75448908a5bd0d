package loam

import (
	"github.com/aretw0/automata/internal/compiler"
)

// DefinitionMetadata represents the frontmatter of an automaton document.
// The definition fields are squashed so that "states", "transitions",
// "initial" and "final" sit at the top level of the frontmatter.
type DefinitionMetadata struct {
	ID string `json:"id" mapstructure:"id"`

	// Format forces the body syntax ("text" or "yaml"); empty means detect.
	Format string `json:"format,omitempty" mapstructure:"format"`

	compiler.Document `mapstructure:",squash"`
}

// HasDefinition reports whether the metadata itself describes the automaton.
func (m DefinitionMetadata) HasDefinition() bool {
	return len(m.States) > 0 || len(m.Transitions) > 0
}

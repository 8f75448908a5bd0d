package compiler

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is the structured form of a definition.
// It uses "mapstructure" tags so that it can be decoded from YAML, JSON or
// frontmatter metadata alike.
//
// States may carry inline flags ("q0:I", "q1:F"); Initial and Final are merged with them.
type Document struct {
	Name        string               `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Initial     string               `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
	Final       []string             `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final"`
	States      []string             `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []TransitionDocument `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDocument describes one or more transitions between two states.
type TransitionDocument struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	To     string   `json:"to" yaml:"to" mapstructure:"to"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty,flow" mapstructure:"labels"`
}

// DecodeDocument converts loosely typed metadata into a Document.
// Weak typing lets single values stand in for lists (final: q1).
func DecodeDocument(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition document: %w", err)
	}
	return &doc, nil
}

// ParseDocument decodes a YAML (or JSON) definition.
func (p *Parser) ParseDocument(name string, data []byte) (*domain.Automaton, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc.Build()
}

// Build creates the frozen automaton described by the document.
func (d *Document) Build() (*domain.Automaton, error) {
	a := domain.NewAutomaton(d.Name)

	for _, entry := range d.States {
		if err := parseStateLine(a, entry); err != nil {
			return nil, fmt.Errorf("state %q: %w", entry, err)
		}
	}
	if d.Initial != "" {
		if _, err := a.AddState(d.Initial, domain.AsInitial()); err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}
	}
	for _, name := range d.Final {
		if _, err := a.AddState(name, domain.AsFinal()); err != nil {
			return nil, fmt.Errorf("final: %w", err)
		}
	}

	for i, td := range d.Transitions {
		labels := td.Labels
		if td.Label != "" {
			labels = append([]string{td.Label}, labels...)
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("transition %d (%s->%s): %w: no label", i, td.From, td.To, domain.ErrInvalidSymbol)
		}
		for _, label := range labels {
			sym, err := domain.ParseSymbol(label)
			if err != nil {
				return nil, fmt.Errorf("transition %d (%s->%s): %w", i, td.From, td.To, err)
			}
			if _, err := a.AddTransition(td.From, td.To, sym); err != nil {
				return nil, fmt.Errorf("transition %d: %w", i, err)
			}
		}
	}

	return a.Freeze(), nil
}

// NewDocument describes an existing automaton.
func NewDocument(a *domain.Automaton) *Document {
	doc := &Document{
		Name:   a.Name,
		Final:  domain.Names(a.FinalStates()),
		States: domain.Names(a.States()),
	}
	if initial, ok := a.Initial(); ok {
		doc.Initial = initial.Name
	}
	for _, e := range MergeEdges(a) {
		doc.Transitions = append(doc.Transitions, TransitionDocument{
			From:   e.From.Name,
			To:     e.To.Name,
			Labels: e.Labels,
		})
	}
	return doc
}

// Marshal renders the document in YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

package compiler

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/automata/pkg/domain"
)

// Format identifies a definition syntax.
type Format string

const (
	// FormatText is the line-oriented "states / transitions" syntax.
	FormatText Format = "text"
	// FormatYAML is the document syntax (YAML or JSON).
	FormatYAML Format = "yaml"
)

const (
	sectionStates      = "states"
	sectionTransitions = "transitions"
	sectionEnd         = "L"
	flagInitial        = "I"
	flagFinal          = "F"
	arrow              = "->"
	labelPrefix        = "label="
)

// Parser is responsible for converting raw definition bytes into an Automaton.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseError locates a failure in a text definition.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Detect guesses the syntax of a definition from its first meaningful line.
func Detect(data []byte) Format {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == sectionStates || line == sectionTransitions {
			return FormatText
		}
		return FormatYAML
	}
	return FormatText
}

// Parse decodes a definition in either syntax and returns a frozen automaton.
// name is used when the definition does not carry its own.
func (p *Parser) Parse(name string, data []byte) (*domain.Automaton, error) {
	switch Detect(data) {
	case FormatYAML:
		return p.ParseDocument(name, data)
	default:
		return p.ParseText(name, data)
	}
}

// ParseText decodes the line-oriented syntax:
//
//	states
//	q0:I
//	q1:F
//	transitions
//	q0->q1[label=a,b]
//	L
//
// One transition is created per label. A transition may only reference states
// declared above it.
func (p *Parser) ParseText(name string, data []byte) (*domain.Automaton, error) {
	a := domain.NewAutomaton(name)
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		switch {
		case line == sectionEnd:
			section = ""
		case line == sectionStates, line == sectionTransitions:
			section = line
		case section == sectionStates:
			err = parseStateLine(a, line)
		case section == sectionTransitions:
			err = parseTransitionLine(a, line)
		default:
			err = fmt.Errorf("line outside of a %q or %q section", sectionStates, sectionTransitions)
		}
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	return a.Freeze(), nil
}

func parseStateLine(a *domain.Automaton, line string) error {
	parts := strings.Split(line, ":")
	var opts []domain.StateOption
	for _, flag := range parts[1:] {
		switch strings.TrimSpace(flag) {
		case flagInitial:
			opts = append(opts, domain.AsInitial())
		case flagFinal:
			opts = append(opts, domain.AsFinal())
		default:
			return fmt.Errorf("unknown state flag %q", flag)
		}
	}
	_, err := a.AddState(strings.TrimSpace(parts[0]), opts...)
	return err
}

func parseTransitionLine(a *domain.Automaton, line string) error {
	from, rest, ok := strings.Cut(line, arrow)
	if !ok {
		return fmt.Errorf("missing %q", arrow)
	}
	to, labels, ok := strings.Cut(rest, "[")
	if !ok {
		return fmt.Errorf("missing label list")
	}
	labels, _, ok = strings.Cut(labels, "]")
	if !ok {
		return fmt.Errorf("unterminated label list")
	}
	labels = strings.TrimPrefix(strings.TrimSpace(labels), labelPrefix)

	for _, label := range strings.Split(labels, ",") {
		sym, err := domain.ParseSymbol(label)
		if err != nil {
			return err
		}
		if _, err := a.AddTransition(strings.TrimSpace(from), strings.TrimSpace(to), sym); err != nil {
			return err
		}
	}
	return nil
}

// ErrNotRepresentable is returned by Render for names or labels the line syntax cannot carry.
var ErrNotRepresentable = errors.New("not representable in the text syntax")

// Render renders an automaton in the line-oriented syntax.
// Transitions sharing both endpoints are merged into one label list.
func Render(a *domain.Automaton) ([]byte, error) {
	var buf bytes.Buffer

	initial, hasInitial := a.Initial()
	buf.WriteString(sectionStates + "\n")
	for _, s := range a.States() {
		if err := checkStateName(s.Name); err != nil {
			return nil, err
		}
		buf.WriteString(s.Name)
		if hasInitial && s == initial {
			buf.WriteString(":" + flagInitial)
		}
		if a.IsFinal(s) {
			buf.WriteString(":" + flagFinal)
		}
		buf.WriteString("\n")
	}

	buf.WriteString(sectionTransitions + "\n")
	for _, t := range a.Transitions() {
		if err := checkLabel(t.Symbol); err != nil {
			return nil, err
		}
	}
	for _, e := range MergeEdges(a) {
		fmt.Fprintf(&buf, "%s%s%s[%s%s]\n", e.From.Name, arrow, e.To.Name, labelPrefix, strings.Join(e.Labels, ","))
	}
	buf.WriteString(sectionEnd + "\n")
	return buf.Bytes(), nil
}

func checkStateName(name string) error {
	switch {
	case name != strings.TrimSpace(name),
		name == sectionStates, name == sectionTransitions, name == sectionEnd,
		strings.HasPrefix(name, "#"),
		strings.ContainsAny(name, ":[]\r\n"),
		strings.Contains(name, arrow):
		return fmt.Errorf("state %q: %w", name, ErrNotRepresentable)
	}
	return nil
}

func checkLabel(sym domain.Symbol) error {
	if sym.IsEpsilon() {
		return nil
	}
	r := sym.Rune()
	if r == ',' || r == ']' || unicode.IsSpace(r) || string(r) == domain.EpsilonLabel {
		return fmt.Errorf("label %q: %w", string(r), ErrNotRepresentable)
	}
	return nil
}

// Edge groups the labels of every transition between the same two states.
type Edge struct {
	From   domain.State
	To     domain.State
	Labels []string
}

// MergeEdges groups transitions by endpoints, in first-use order.
func MergeEdges(a *domain.Automaton) []Edge {
	type key struct{ from, to domain.State }
	index := make(map[key]int)
	var edges []Edge
	for _, t := range a.Transitions() {
		k := key{t.From, t.To}
		i, ok := index[k]
		if !ok {
			i = len(edges)
			index[k] = i
			edges = append(edges, Edge{From: t.From, To: t.To})
		}
		edges[i].Labels = append(edges[i].Labels, t.Symbol.String())
	}
	return edges
}

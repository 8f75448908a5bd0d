package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains evaluation data to visualize on the graph.
type GraphOverlay struct {
	// Visited are states active at some earlier step.
	Visited []string
	// Active are the states active at the end of the evaluation.
	Active []string
	// Accepted colours the active states as accepting or rejecting.
	Accepted bool
}

// NewOverlay builds an overlay from a trace.
func NewOverlay(trace domain.Trace) *GraphOverlay {
	o := &GraphOverlay{
		Active:   domain.Names(trace.Active()),
		Accepted: trace.Accepted,
	}
	o.Visited = append(o.Visited, domain.Names(trace.Start)...)
	for _, step := range trace.Steps {
		o.Visited = append(o.Visited, domain.Names(step.Active)...)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// It applies the usual automaton notation:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Other: [Rectangle]
// Transitions sharing both endpoints are drawn as one edge labelled with every symbol.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	// Node IDs are positional; names only appear in labels.
	ids := nodeIDs(a)

	initial, hasInitial := a.Initial()
	for _, s := range a.States() {
		opener, closer := "[", "]"

		switch {
		case a.IsFinal(s):
			opener, closer = "(((", ")))"
		case hasInitial && s == initial:
			opener, closer = "((", "))"
		}

		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s], opener, escapeLabel(s.Name), closer)
	}

	if hasInitial {
		// Entry arrow from an invisible point.
		sb.WriteString("    _start_[ ]:::hidden\n")
		fmt.Fprintf(&sb, "    _start_ --> %s\n", ids[initial])
		sb.WriteString("    classDef hidden display:none;\n")
	}

	for _, e := range compiler.MergeEdges(a) {
		label := escapeLabel(strings.Join(e.Labels, ","))
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if allEpsilon(e.Labels) {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", ids[e.From], arrow, ids[e.To])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		active := make(map[string]bool)
		for _, name := range overlay.Active {
			active[name] = true
		}

		styled := make(map[string]bool)
		for _, name := range overlay.Visited {
			id, ok := ids[domain.State{Name: name}]
			if !ok || styled[name] || active[name] {
				continue
			}
			styled[name] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}

		class := "rejected"
		if overlay.Accepted {
			class = "accepted"
		}
		for _, name := range overlay.Active {
			id, ok := ids[domain.State{Name: name}]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", id, class)
		}
	}

	return sb.String()
}

func nodeIDs(a *domain.Automaton) map[domain.State]string {
	ids := make(map[domain.State]string)
	for i, s := range a.States() {
		ids[s] = fmt.Sprintf("s%d", i)
	}
	return ids
}

func allEpsilon(labels []string) bool {
	for _, l := range labels {
		if l != domain.EpsilonLabel {
			return false
		}
	}
	return len(labels) > 0
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

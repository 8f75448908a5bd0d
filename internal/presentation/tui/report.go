package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

// Describe lists the parts of an automaton as markdown.
func Describe(a *domain.Automaton) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Name)

	initial := "_none_"
	if s, ok := a.Initial(); ok {
		initial = code(s.Name)
	}
	fmt.Fprintf(&sb, "- **Initial state:** %s\n", initial)
	fmt.Fprintf(&sb, "- **Final states:** %s\n", codeList(domain.Names(a.FinalStates())))
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(domain.Names(a.States())))
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n\n", codeList(symbols(a.Alphabet())))

	sb.WriteString("## Transitions\n\n")
	edges := compiler.MergeEdges(a)
	if len(edges) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| From | To | Labels |\n|---|---|---|\n")
	for _, e := range edges {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", code(e.From.Name), code(e.To.Name), codeList(e.Labels))
	}
	return sb.String()
}

// Determinism reports the determinism verdict and its conflicts as markdown.
func Determinism(name string, conflicts []domain.Conflict) string {
	var sb strings.Builder
	if len(conflicts) == 0 {
		fmt.Fprintf(&sb, "**%s** is deterministic.\n", name)
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%s** is not deterministic (%d conflicts).\n\n", name, len(conflicts))
	sb.WriteString("| State | Symbol | Targets |\n|---|---|---|\n")
	for _, c := range conflicts {
		targets := make([]string, len(c.Transitions))
		for i, t := range c.Transitions {
			targets[i] = t.To.Name
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", code(c.State.Name), code(c.Symbol.String()), codeList(targets))
	}
	return sb.String()
}

// Verdicts tabulates membership results as markdown.
func Verdicts(name string, traces []domain.Trace) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", name)
	sb.WriteString("| Word | Verdict | Reason | Final states |\n|---|---|---|---|\n")
	for _, tr := range traces {
		verdict := "rejected"
		if tr.Accepted {
			verdict = "accepted"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", word(tr.Word), verdict, string(tr.Reason), codeList(domain.Names(tr.Active())))
	}
	return sb.String()
}

// Validation renders validator reports as markdown.
func Validation(reports []validator.Report) string {
	var sb strings.Builder
	for _, r := range reports {
		if r.OK() {
			fmt.Fprintf(&sb, "- ✅ **%s**\n", r.Automaton)
			continue
		}
		fmt.Fprintf(&sb, "- ⚠️ **%s**\n", r.Automaton)
		for _, issue := range r.Issues {
			fmt.Fprintf(&sb, "  - `%s` %s\n", issue.Kind, issue.Message)
		}
	}
	return sb.String()
}

func symbols(syms []domain.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}

func word(w string) string {
	if w == "" {
		return domain.EpsilonLabel
	}
	return code(w)
}

func code(s string) string {
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = code(it)
	}
	return strings.Join(quoted, ", ")
}

package graph

import (
	"fmt"
	"strings"
)

// Mermaid renders the graph as a Mermaid flowchart. The builder performs no
// drawing; the returned text is meant for an external renderer.
func (g *WorkflowGraph) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "    %s[\"%s (%s)\"]\n", n.Name, n.Name, n.Role)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "    %s --> %s\n", e.From, e.To)
	}
	return b.String()
}

// DOT renders the graph in Graphviz dot syntax.
func (g *WorkflowGraph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph workflow {\n")
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "    %q [label=%q];\n", n.Name, fmt.Sprintf("%s\\n(%s)", n.Name, n.Role))
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "    %q -> %q;\n", e.From, e.To)
	}
	b.WriteString("}\n")
	return b.String()
}

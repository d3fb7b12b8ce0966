package dfa

import (
	"fmt"
	"io"
)

// ExportDOT writes a Graphviz representation of d to w, for the same
// debugging purpose LAB_2/regexlib/dot.go's ExportDOT served — dumping a
// compiled group's automaton to inspect why two rules are colliding.
// Transition labels show the representative code point of each class
// rather than every matched rune, since classes, not runes, are what the
// compiled DFA actually branches on.
func ExportDOT(w io.Writer, d *DFA) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, s := range d.States {
		shape := "circle"
		label := fmt.Sprintf("q%d", s.id)
		if s.acceptRule >= 0 {
			shape = "doublecircle"
			if s.acceptRule < len(d.Rules) && d.Rules[s.acceptRule].Name != "" {
				label = fmt.Sprintf("q%d\\n%s", s.id, d.Rules[s.acceptRule].Name)
			}
		}
		fmt.Fprintf(w, "    q%d [shape=%s label=%q];\n", s.id, shape, label)
		for c, to := range s.trans {
			if to < 0 {
				continue
			}
			fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", s.id, to, classLabel(d.Alphabet.Representative(c)))
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", d.Start)
	fmt.Fprintln(w, "}")
}

func classLabel(r rune) string {
	switch r {
	case 0:
		return "eof"
	default:
		return string(r)
	}
}

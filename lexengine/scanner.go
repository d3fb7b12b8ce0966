package lexengine

import "dfalang/ast"

// scanner holds the input code points (with the EOF sentinel appended) and
// the cursor into them. It knows nothing about groups or parser state; it
// only runs a *dfa.DFA forward and reports the longest match, the same
// division of labor LAB_2/regexlib/lexer.go's lexer keeps from its
// grammar-level parser.
type scanner struct {
	runes      []rune
	pos        int
	matchStart int
	matchText  string
}

func newScanner(input string) *scanner {
	runes := []rune(input)
	runes = append(runes, 0) // EOF sentinel, spec §4.C
	return &scanner{runes: runes}
}

// currentMatch is the text consumed by the rule whose action is currently
// running (spec §4.C's currentMatch).
func (sc *scanner) currentMatch() string { return sc.matchText }

// rewind reverts the cursor to the start of the current match, per
// spec §4.C: "used when an EOF is detected inside a group so the outer
// group can re-observe it."
func (sc *scanner) rewind() { sc.pos = sc.matchStart }

// advance simulates g's DFA from the cursor, remembering the position and
// rule index of the last accepting state visited, then either dispatches
// the winning rule's action or, if no rule accepted at all (dead from the
// very start), emits a single code point as Unrecognized and advances by
// one, per spec §4.C's "no accept reached" policy.
func (sc *scanner) advance(g *Group, c *Ctx) {
	d := g.compile(c.logger)
	rules := g.compiledRules()

	sc.matchStart = sc.pos
	cur := d.Start
	bestLen, bestRule := -1, -1
	if tag := d.AcceptRule(cur); tag >= 0 {
		bestLen, bestRule = 0, tag
	}

	pos := sc.pos
	n := 0
	for pos < len(sc.runes) {
		next, ok := d.Step(cur, sc.runes[pos])
		if !ok {
			break
		}
		cur = next
		pos++
		n++
		if tag := d.AcceptRule(cur); tag >= 0 {
			bestLen, bestRule = n, tag
		}
	}

	if bestRule < 0 {
		r := sc.runes[sc.pos]
		sc.matchText = string(r)
		sc.pos++
		if c.logger != nil {
			c.logger.Debug("unrecognized code point", "group", g.name, "char", string(r))
		}
		c.App(&ast.Unrecognized{Char: r})
		return
	}

	sc.matchText = string(sc.runes[sc.matchStart : sc.matchStart+bestLen])
	sc.pos = sc.matchStart + bestLen
	rules[bestRule].Action(c)
}

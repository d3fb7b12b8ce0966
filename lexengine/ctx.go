package lexengine

import (
	"log/slog"

	"dfalang/ast"
)

// Ctx is what every Action receives: the matched text, and exclusive
// access to the parser state and group stack needed to react to it. It is
// the Go shape of the "mutable parser context" spec §9 asks actions to
// take instead of reflection-driven dispatch.
type Ctx struct {
	state   *ParserState
	scanner *scanner
	groups  *groupStack
	byName  map[string]*Group
	logger  *slog.Logger // nil unless the Parser was built with WithLogger
}

// CurrentMatch is the text the firing rule matched.
func (c *Ctx) CurrentMatch() string { return c.scanner.currentMatch() }

// MatchLen is len(currentMatch) in code points, the width actions like
// onWhitespace need rather than a byte count.
func (c *Ctx) MatchLen() int { return len([]rune(c.scanner.currentMatch())) }

// Rewind reverts the cursor to the start of the match currently being
// handled, per spec §4.C.
func (c *Ctx) Rewind() { c.scanner.rewind() }

// Begin pushes the named group, switching the active DFA the scanner runs
// against on the next advance.
func (c *Ctx) Begin(name string) {
	g, ok := c.byName[name]
	if !ok {
		panic(&InternalError{Reason: "Begin: no such group " + name})
	}
	c.groups.begin(g)
}

// End pops the active group.
func (c *Ctx) End() { c.groups.end() }

// App appends t to the accumulating result, spec §4.E's left-associative
// juxtaposition.
func (c *Ctx) App(t ast.Node) { c.state.app(t) }

package lexengine

import (
	"log/slog"

	"dfalang/dfa"
	"dfalang/pattern"
)

// Rule binds a pattern to an action. Groups compile their own rules
// together with their ancestors' into one dfa.DFA, own rules first so a
// child's rule beats its parent's on equal match length (spec §4.B).
type Rule struct {
	Name    string
	Pattern pattern.Pattern
	Action  Action
}

// Action is invoked by the scanner with the matched text and the parser
// state to mutate, exactly like the single mutable Ctx the teacher's
// internal/interpreter handlers close over, generalized to also carry the
// matched text and to let an action request a group push/pop or a rewind.
type Action func(c *Ctx)

// Group is a named scanner group: a declared-in-order rule list and an
// optional parent. Groups form a forest, compiled bottom-up as spec §4.D
// requires, so a child's DFA is only ever built from an already-compiled
// parent rule list.
type Group struct {
	name   string
	parent *Group
	rules  []Rule
	dfa    *dfa.DFA // nil until first use; compiled lazily and memoized
}

// defineGroup creates a new, parentless group. setParent links it into the
// forest; rule appends to its own rule list.
func defineGroup(name string) *Group {
	return &Group{name: name}
}

func (g *Group) setParent(parent *Group) { g.parent = parent }

// rule registers pattern → action in g's own rule list, in declaration
// order. Declaration order is significant: it is the tie-break spec §3/§8
// requires between equal-length matches within one group.
func (g *Group) rule(name string, p pattern.Pattern, action Action) {
	g.rules = append(g.rules, Rule{Name: name, Pattern: p, Action: action})
}

// compiledRules returns g's own rules followed by its transitive
// ancestors' rules, per spec §4.B/§4.D: "a group's effective rule set at
// scan time is its own rules followed by its transitive ancestors' rules."
func (g *Group) compiledRules() []Rule {
	var out []Rule
	for cur := g; cur != nil; cur = cur.parent {
		out = append(out, cur.rules...)
	}
	return out
}

// compile builds g's DFA on first use and memoizes it, per spec §4.B's
// "compilation is lazy (first use) and memoized per group." logger may be
// nil; when set, the first compile of each group reports its rule and
// state counts, which is the one diagnostic the teacher's own debug
// tooling (LAB_2/regexlib's dot export) otherwise only gets at visually.
func (g *Group) compile(logger *slog.Logger) *dfa.DFA {
	if g.dfa != nil {
		return g.dfa
	}
	rules := g.compiledRules()
	dfaRules := make([]dfa.Rule, len(rules))
	for i, r := range rules {
		dfaRules[i] = dfa.Rule{Pattern: r.Pattern, Name: r.Name}
	}
	g.dfa = dfa.Compile(dfaRules)
	if logger != nil {
		logger.Debug("compiled group", "group", g.name, "rules", len(dfaRules), "states", len(g.dfa.States))
	}
	return g.dfa
}

// groupStack is a nonempty stack of active groups; the top is the current
// group. Popping down to the root is forbidden (spec §4.D).
type groupStack struct {
	frames []*Group
}

func newGroupStack(root *Group) *groupStack {
	return &groupStack{frames: []*Group{root}}
}

func (s *groupStack) current() *Group { return s.frames[len(s.frames)-1] }

func (s *groupStack) begin(g *Group) { s.frames = append(s.frames, g) }

// end pops the active group. Popping the last remaining frame is one of
// the two invariant violations spec §7 calls fatal to the parser.
func (s *groupStack) end() {
	if len(s.frames) <= 1 {
		panic(&InternalError{Reason: "endGroup: no active group to pop"})
	}
	s.frames = s.frames[:len(s.frames)-1]
}

package dfa

import "dfalang/pattern"

// nfaState and nfaEdge implement a Thompson-construction ε-NFA, the same
// shape LAB_2/regexlib/nfa.go builds for a single regex AST — generalized
// here to code-point ranges (instead of single runes) and to a rule-tagged
// accept (instead of a plain accept bool), since a scanner group's DFA must
// remember *which* rule won, not just that some rule did.
type nfaState struct {
	id         int
	edges      []nfaEdge
	acceptRule int // -1 if this state does not finish any rule
}

type nfaEdge struct {
	eps    bool
	lo, hi rune // meaningless when eps is true
	to     *nfaState
}

// nfaBuilder owns state allocation for one compilation. Unlike
// LAB_2/regexlib's package-level stateID counter, the counter here is
// scoped to a single build so compiling two groups concurrently (safe,
// since each group's compile-on-first-use is independent) can never race
// on shared mutable state — see spec §5.
type nfaBuilder struct {
	states []*nfaState
}

func (b *nfaBuilder) newState() *nfaState {
	s := &nfaState{id: len(b.states), acceptRule: -1}
	b.states = append(b.states, s)
	return s
}

// frag is a partially built NFA fragment: an entry state and the dangling
// exit states still waiting to be wired to whatever comes next.
type frag struct {
	start *nfaState
	outs  []*nfaState
}

func patchOuts(outs []*nfaState, to *nfaState) {
	for _, s := range outs {
		s.edges = append(s.edges, nfaEdge{eps: true, to: to})
	}
}

// build performs the Thompson construction for one Pattern value, mirroring
// LAB_2/regexlib/nfa.go's buildNFA case by case (nEmpty/nChar/nConcat/
// nUnion/nStar/nPlus map onto KindNone/KindRange/KindSeq/KindOr/KindMany/
// KindMany1 respectively; there is no nGroup/nBackRef/nRepeat/nSet here
// because pattern.Pattern has no captures and no counted repetition).
func (b *nfaBuilder) build(p pattern.Pattern) frag {
	switch p.Kind {
	case pattern.KindNone:
		s := b.newState()
		return frag{start: s, outs: nil}

	case pattern.KindPass:
		s := b.newState()
		return frag{start: s, outs: []*nfaState{s}}

	case pattern.KindRange:
		s1, s2 := b.newState(), b.newState()
		s1.edges = append(s1.edges, nfaEdge{lo: p.Lo, hi: p.Hi, to: s2})
		return frag{start: s1, outs: []*nfaState{s2}}

	case pattern.KindOr:
		s := b.newState()
		f1 := b.build(*p.Left)
		f2 := b.build(*p.Right)
		s.edges = append(s.edges,
			nfaEdge{eps: true, to: f1.start},
			nfaEdge{eps: true, to: f2.start},
		)
		outs := make([]*nfaState, 0, len(f1.outs)+len(f2.outs))
		outs = append(outs, f1.outs...)
		outs = append(outs, f2.outs...)
		return frag{start: s, outs: outs}

	case pattern.KindSeq:
		f1 := b.build(*p.Left)
		f2 := b.build(*p.Right)
		patchOuts(f1.outs, f2.start)
		return frag{start: f1.start, outs: f2.outs}

	case pattern.KindMany:
		s := b.newState()
		f := b.build(*p.Left)
		patchOuts(f.outs, s)
		s.edges = append(s.edges, nfaEdge{eps: true, to: f.start})
		return frag{start: s, outs: []*nfaState{s}}

	case pattern.KindMany1:
		// One-or-more: loop the fragment's own exits back to its own
		// start. patchOuts appends rather than replaces, so the exits
		// remain valid dangling outs for whatever follows — same trick
		// LAB_2/regexlib/nfa.go uses for nPlus.
		f := b.build(*p.Left)
		patchOuts(f.outs, f.start)
		return f

	default:
		panic("dfa: unknown pattern kind")
	}
}

// buildRuleSetNFA unions every rule's fragment under one new start state via
// ε-edges, tagging each fragment's exits with that rule's index in rules.
// Rule order is significant: it is the tie-break spec §3/§4.B requires
// ("the rule declared first wins"), implemented simply by letting smaller
// indices be smaller acceptRule tags — see acceptTag in subset.go.
func buildRuleSetNFA(rules []Rule) (start *nfaState, b *nfaBuilder) {
	b = &nfaBuilder{}
	start = b.newState()
	for i, r := range rules {
		f := b.build(r.Pattern)
		start.edges = append(start.edges, nfaEdge{eps: true, to: f.start})
		acc := b.newState()
		acc.acceptRule = i
		patchOuts(f.outs, acc)
	}
	return start, b
}

// Package dfa compiles an ordered list of (pattern, rule) declarations into
// a deterministic finite automaton with longest-match, first-rule-wins
// semantics. It generalizes the Thompson-construction-then-subset-
// construction-then-minimize pipeline LAB_2/regexlib builds for a single
// regular expression (nfa.go/dfa.go/minimize.go there) to a whole rule set
// compiled as one automaton, the way a real lexer generator must.
package dfa

import "dfalang/pattern"

const maxCodePoint = pattern.MaxCodePoint

// Rule pairs a Pattern with an opaque identifier. dfa itself knows nothing
// about what actions are — that is lexengine's job; dfa only needs to be
// able to say "rule index 3 matched, longest, starting here."
type Rule struct {
	Pattern pattern.Pattern
	Name    string // for diagnostics and dot export only
}

// State is one DFA state: a dense transition table indexed by alphabet
// class, and the index into Rules of the rule this state accepts (-1 if
// this state is not accepting).
type State struct {
	id         int
	trans      []int // trans[classID] = next state id, or -1
	acceptRule int
}

// ID is this state's index within its DFA's States slice.
func (s *State) ID() int { return s.id }

// AcceptRule is the index into the owning DFA's Rules of the rule this
// state accepts, or -1 if the state is not accepting.
func (s *State) AcceptRule() int { return s.acceptRule }

// DFA is a compiled, minimized automaton over one group's effective rule
// list (its own rules followed by its ancestors', per spec §4.B).
type DFA struct {
	Alphabet *Alphabet
	States   []*State
	Start    int
	Rules    []Rule
}

// Step follows the transition from state cur on code point r. ok is false
// if the transition is dead (no rule in this automaton can continue from
// here on r).
func (d *DFA) Step(cur int, r rune) (next int, ok bool) {
	c := d.Alphabet.ClassOf(r)
	next = d.States[cur].trans[c]
	return next, next >= 0
}

// AcceptRule reports the accept tag of state id, or -1.
func (d *DFA) AcceptRule(id int) int { return d.States[id].acceptRule }

// Compile builds a DFA recognizing the union of rules, with longest-match
// and declaration-order tie-break semantics (spec §3/§4.B). The result is
// minimized, but minimization never merges two states that accept
// different rules — see minimize.go — so Rules indices stay meaningful on
// every reachable accepting state.
func Compile(rules []Rule) *DFA {
	start, b := buildRuleSetNFA(rules)
	alphabet := newAlphabet(b.states)
	raw, rawStart := subsetConstruct(start, alphabet)
	states, newStart := minimize(raw, alphabet, rawStart)
	return &DFA{Alphabet: alphabet, States: states, Start: newStart, Rules: rules}
}

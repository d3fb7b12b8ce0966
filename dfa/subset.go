package dfa

import (
	"fmt"
	"sort"
)

// epsilonClosure extends set in place with every nfaState reachable from it
// via ε-edges only, and returns it. Mirrors LAB_2/regexlib/dfa.go's
// epsilonClosure, minus the container/list dependency — a plain slice
// stack is simpler here since nothing needs FIFO order.
func epsilonClosure(set map[*nfaState]struct{}) map[*nfaState]struct{} {
	stack := make([]*nfaState, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range s.edges {
			if !e.eps {
				continue
			}
			if _, ok := set[e.to]; !ok {
				set[e.to] = struct{}{}
				stack = append(stack, e.to)
			}
		}
	}
	return set
}

// moveNFA returns every state reachable from set by consuming exactly the
// code point r over a non-ε edge.
func moveNFA(set map[*nfaState]struct{}, r rune) map[*nfaState]struct{} {
	res := make(map[*nfaState]struct{})
	for s := range set {
		for _, e := range s.edges {
			if e.eps {
				continue
			}
			if e.lo <= r && r <= e.hi {
				res[e.to] = struct{}{}
			}
		}
	}
	return res
}

// acceptTag returns the minimum acceptRule among the NFA states in set, or
// -1 if none of them accept. Taking the minimum is what makes "rule
// declared first wins" fall out of subset construction for free (spec
// §4.B) — buildRuleSetNFA assigns smaller indices to earlier rules.
func acceptTag(set map[*nfaState]struct{}) int {
	best := -1
	for s := range set {
		if s.acceptRule >= 0 && (best == -1 || s.acceptRule < best) {
			best = s.acceptRule
		}
	}
	return best
}

func subsetKey(set map[*nfaState]struct{}) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, s.id)
	}
	sort.Ints(ids)
	return fmt.Sprint(ids)
}

// subsetConstruct determinizes the ε-NFA rooted at start, generalizing
// LAB_2/regexlib/dfa.go's nfaToDFAcore from single runes to alphabet
// classes so it scales to the full Unicode code-point space.
func subsetConstruct(start *nfaState, alphabet *Alphabet) (states []*State, startID int) {
	newRawState := func(set map[*nfaState]struct{}) *State {
		st := &State{
			id:         len(states),
			trans:      make([]int, alphabet.NumClasses()),
			acceptRule: acceptTag(set),
		}
		for i := range st.trans {
			st.trans[i] = -1
		}
		states = append(states, st)
		return st
	}

	initSet := epsilonClosure(map[*nfaState]struct{}{start: {}})
	seen := map[string]int{}
	s0 := newRawState(initSet)
	seen[subsetKey(initSet)] = s0.id

	queue := []map[*nfaState]struct{}{initSet}
	for len(queue) > 0 {
		curSet := queue[0]
		queue = queue[1:]
		curID := seen[subsetKey(curSet)]

		for c := 0; c < alphabet.NumClasses(); c++ {
			rep := alphabet.Representative(c)
			moved := moveNFA(curSet, rep)
			if len(moved) == 0 {
				continue
			}
			clo := epsilonClosure(moved)
			k := subsetKey(clo)
			id, exists := seen[k]
			if !exists {
				st := newRawState(clo)
				id = st.id
				seen[k] = id
				queue = append(queue, clo)
			}
			states[curID].trans[c] = id
		}
	}
	return states, s0.id
}

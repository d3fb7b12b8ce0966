package dfa

// This file adapts LAB_2/regexlib/setops.go's DFA product construction from
// single-rune transition tables to alphabet classes. It is not part of the
// scanner's hot path — the core only ever needs Compile's output — but it
// backs the equivalence checks dfa_test.go uses to verify that minimizing a
// freshly subset-constructed automaton never changes the language it
// accepts (spec §8's determinism invariants), the same role
// LAB_2/regexlib/regex_test.go used acc/newRE for.

// Total returns d with an explicit dead state added so every (state,
// class) pair has a real target, matching the "assumes total transition
// function" precondition LAB_2/regexlib/setops.go's Complement silently
// relied on.
func (d *DFA) Total() *DFA {
	dead := len(d.States)
	states := make([]*State, len(d.States)+1)
	for i, s := range d.States {
		trans := append([]int(nil), s.trans...)
		for c, t := range trans {
			if t < 0 {
				trans[c] = dead
			}
		}
		states[i] = &State{id: i, trans: trans, acceptRule: s.acceptRule}
	}
	deadTrans := make([]int, d.Alphabet.NumClasses())
	for i := range deadTrans {
		deadTrans[i] = dead
	}
	states[dead] = &State{id: dead, trans: deadTrans, acceptRule: -1}
	return &DFA{Alphabet: d.Alphabet, States: states, Start: d.Start, Rules: d.Rules}
}

// Complement accepts exactly the inputs d (after completion) rejects.
// Complementing collapses which rule would have won, so every resulting
// accept state is tagged with a single synthetic rule — useful for
// language-level sanity checks, not for driving a scanner.
func (d *DFA) Complement() *DFA {
	t := d.Total()
	states := make([]*State, len(t.States))
	for i, s := range t.States {
		acc := -1
		if s.acceptRule < 0 {
			acc = 0
		}
		states[i] = &State{id: i, trans: append([]int(nil), s.trans...), acceptRule: acc}
	}
	return &DFA{Alphabet: t.Alphabet, States: states, Start: t.Start, Rules: []Rule{{Name: "complement"}}}
}

// Equivalent reports whether a and b (which must share an Alphabet — true
// of any DFA and its own minimized form) accept exactly the same
// language, by a BFS over reachable state pairs in the style of
// LAB_2/regexlib/setops.go's Product, stopping as soon as a pair disagrees
// on acceptance.
func Equivalent(a, b *DFA) bool {
	type pair struct{ x, y int }
	visited := map[pair]bool{}
	queue := []pair{{a.Start, b.Start}}
	visited[queue[0]] = true

	accepts := func(d *DFA, id int) bool { return d.States[id].acceptRule >= 0 }

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if accepts(a, p.x) != accepts(b, p.y) {
			return false
		}
		for c := 0; c < a.Alphabet.NumClasses(); c++ {
			nx := a.States[p.x].trans[c]
			ny := b.States[p.y].trans[c]
			if nx < 0 && ny < 0 {
				continue
			}
			if nx < 0 || ny < 0 {
				return false
			}
			np := pair{nx, ny}
			if !visited[np] {
				visited[np] = true
				queue = append(queue, np)
			}
		}
	}
	return true
}

package dfa

import "sort"

// minimize applies Hopcroft-style partition refinement to states, the same
// algorithm LAB_2/regexlib/minimize.go implements for a boolean-accept DFA,
// generalized to tagged acceptance: the initial partition buckets states by
// their full AcceptRule value rather than by a simple accept/non-accept
// split, so two accepting states that finish different rules can never be
// merged even if every other observable behavior is identical. Collapsing
// them would silently pick one rule's action over the other's.
func minimize(states []*State, alphabet *Alphabet, start int) ([]*State, int) {
	n := len(states)

	buckets := map[int][]int{}
	for _, s := range states {
		buckets[s.acceptRule] = append(buckets[s.acceptRule], s.id)
	}
	tags := make([]int, 0, len(buckets))
	for tag := range buckets {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	partitions := make([][]int, 0, len(buckets))
	for _, tag := range tags {
		ids := buckets[tag]
		sort.Ints(ids)
		partitions = append(partitions, ids)
	}

	work := make([]int, len(partitions))
	for i := range work {
		work[i] = i
	}

	for len(work) > 0 {
		idx := work[0]
		work = work[1:]
		if idx >= len(partitions) {
			continue // this block has since been split away from under us
		}
		setA := make(map[int]struct{}, len(partitions[idx]))
		for _, id := range partitions[idx] {
			setA[id] = struct{}{}
		}

		for c := 0; c < alphabet.NumClasses(); c++ {
			X := make(map[int]struct{})
			for _, s := range states {
				if t := s.trans[c]; t >= 0 {
					if _, ok := setA[t]; ok {
						X[s.id] = struct{}{}
					}
				}
			}
			if len(X) == 0 {
				continue
			}

			for pIdx := 0; pIdx < len(partitions); pIdx++ {
				Y := partitions[pIdx]
				var inter, diff []int
				for _, id := range Y {
					if _, ok := X[id]; ok {
						inter = append(inter, id)
					} else {
						diff = append(diff, id)
					}
				}
				if len(inter) == 0 || len(diff) == 0 {
					continue
				}
				pending := false
				for _, w := range work {
					if w == pIdx {
						pending = true
					}
				}
				partitions[pIdx] = inter
				partitions = append(partitions, diff)
				// A block still waiting on the worklist needs both halves
				// queued; otherwise queuing the smaller half is enough.
				if pending || len(inter) >= len(diff) {
					work = append(work, len(partitions)-1)
				} else {
					work = append(work, pIdx)
				}
			}
		}
	}

	blockOf := make([]int, n)
	for bi, ids := range partitions {
		for _, id := range ids {
			blockOf[id] = bi
		}
	}

	newStates := make([]*State, len(partitions))
	for bi, ids := range partitions {
		rep := states[ids[0]]
		ns := &State{id: bi, trans: make([]int, alphabet.NumClasses()), acceptRule: rep.acceptRule}
		for i := range ns.trans {
			ns.trans[i] = -1
		}
		newStates[bi] = ns
	}
	for bi, ids := range partitions {
		rep := states[ids[0]]
		for c, t := range rep.trans {
			if t >= 0 {
				newStates[bi].trans[c] = blockOf[t]
			}
		}
	}

	return newStates, blockOf[start]
}

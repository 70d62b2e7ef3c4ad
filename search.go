package xwsolve

import (
	"context"
	"slices"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

// Assignment maps slots to their chosen words. Inside the search it is a
// partial mapping under construction; Solve only ever returns a complete one.
type Assignment map[puzzle.Slot]string

// backtrack is depth-first search over partial assignments. Each trial binding
// is bracketed by a domain snapshot: the chosen slot's domain is narrowed to
// the trial word, arcs into it are re-propagated, and on any failure the
// snapshot is restored before the next word is tried. Returns the first
// complete assignment found, or ok=false once every candidate of every slot
// along this path is exhausted.
func (s *Solver) backtrack(ctx context.Context, asg Assignment) (Assignment, bool) {
	if len(asg) == len(s.pzl.Slots) {
		return asg, true
	}
	if ctx.Err() != nil {
		return nil, false
	}

	v := s.selectUnassignedSlot(asg)
	for _, word := range s.orderCandidates(v, asg) {
		asg[v] = word
		if s.consistent(asg) {
			snap := s.domains.Snapshot()
			s.domains.Assign(v, word)

			neighbors := s.pzl.Neighbors(v)
			seed := make([]arc, 0, len(neighbors))
			for _, n := range neighbors {
				seed = append(seed, arc{n, v})
			}

			if s.runArcConsistency(seed) {
				if result, ok := s.backtrack(ctx, asg); ok {
					return result, true
				}
			}
			s.domains.Restore(snap)
		}
		delete(asg, v)
	}
	return nil, false
}

// selectUnassignedSlot picks the unassigned slot with the fewest remaining
// candidates, breaking ties by highest degree. Remaining ties resolve to the
// earliest slot in puzzle order; that order is implementation-defined and not
// guaranteed stable.
func (s *Solver) selectUnassignedSlot(asg Assignment) puzzle.Slot {
	var best puzzle.Slot
	found := false
	for _, v := range s.pzl.Slots {
		if _, assigned := asg[v]; assigned {
			continue
		}
		if !found {
			best, found = v, true
			continue
		}
		cv, cb := s.domains.Count(v), s.domains.Count(best)
		if cv < cb || (cv == cb && len(s.pzl.Neighbors(v)) > len(s.pzl.Neighbors(best))) {
			best = v
		}
	}
	return best
}

// orderCandidates returns v's candidates least-constraining first: ascending
// by the number of words they would rule out across the domains of v's
// unassigned neighbors. A candidate equal to a neighbor's candidate counts as
// ruled out too, since final values must be globally distinct. Equal counts
// keep lexical order; like the variable tie-break, that is
// implementation-defined.
func (s *Solver) orderCandidates(v puzzle.Slot, asg Assignment) []string {
	words := s.domains.Words(v)
	eliminated := make(map[string]int, len(words))

	for _, word := range words {
		for _, n := range s.pzl.Neighbors(v) {
			if _, assigned := asg[n]; assigned {
				continue
			}
			ov, _ := s.pzl.Overlap(v, n)
			for other := range s.domains.words[n] {
				if word == other || word[ov.I] != other[ov.J] {
					eliminated[word]++
				}
			}
		}
	}

	slices.SortStableFunc(words, func(a, b string) int {
		return eliminated[a] - eliminated[b]
	})
	return words
}

// consistent reports whether the partial assignment holds up on its own: all
// assigned words pairwise distinct across the whole puzzle, every word exactly
// its slot's length, and overlap agreement wherever both ends are assigned.
func (s *Solver) consistent(asg Assignment) bool {
	seen := make(map[string]struct{}, len(asg))
	for v, word := range asg {
		if _, dup := seen[word]; dup {
			return false
		}
		seen[word] = struct{}{}

		if len(word) != v.Length {
			return false
		}
		for _, n := range s.pzl.Neighbors(v) {
			other, assigned := asg[n]
			if !assigned {
				continue
			}
			ov, _ := s.pzl.Overlap(v, n)
			if word[ov.I] != other[ov.J] {
				return false
			}
		}
	}
	return true
}

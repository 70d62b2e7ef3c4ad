package xwsolve

import (
	"github.com/rs/zerolog/log"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

// arc is an ordered slot pair queued for revision: make x consistent with y.
type arc struct {
	x, y puzzle.Slot
}

// enforceNodeConsistency removes from every slot's domain the words whose
// length differs from the slot's. Idempotent; runs once before search.
func (s *Solver) enforceNodeConsistency() {
	for _, v := range s.pzl.Slots {
		s.domains.Restrict(v, func(word string) bool {
			return len(word) == v.Length
		})
	}
}

// revise makes x arc-consistent with y: every word removed from x's domain has
// no word left in y's domain agreeing at the overlap position. Reports whether
// any removal occurred. Slots without a defined overlap are never revised
// against each other.
func (s *Solver) revise(x, y puzzle.Slot) bool {
	ov, ok := s.pzl.Overlap(x, y)
	if !ok {
		return false
	}
	return s.domains.Restrict(x, func(word string) bool {
		for other := range s.domains.words[y] {
			if word[ov.I] == other[ov.J] {
				return true
			}
		}
		return false
	})
}

// runArcConsistency drives AC-3 to fixpoint over a FIFO worklist of arcs
// (duplicates permitted). A nil seed means every ordered slot pair with a
// defined overlap. When a revision changes x, every arc (z, x) for neighbors z
// other than y is re-enqueued, since only arcs into x can newly lose support.
// Returns false the moment a revision empties a domain: the puzzle is
// unsatisfiable from the current state and remaining arcs are abandoned.
func (s *Solver) runArcConsistency(seed []arc) bool {
	queue := seed
	if queue == nil {
		for _, x := range s.pzl.Slots {
			for _, y := range s.pzl.Neighbors(x) {
				queue = append(queue, arc{x, y})
			}
		}
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		if !s.revise(a.x, a.y) {
			continue
		}
		if s.domains.Count(a.x) == 0 {
			log.Debug().Stringer("slot", a.x).Msg("domain emptied during propagation")
			return false
		}
		for _, z := range s.pzl.Neighbors(a.x) {
			if z != a.y {
				queue = append(queue, arc{z, a.x})
			}
		}
	}
	return true
}

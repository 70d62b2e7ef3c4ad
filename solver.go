// Package xwsolve fills a crossword structure from a vocabulary by treating it
// as a constraint satisfaction problem: each slot is a variable whose domain
// is the candidate word set, constrained by word length, letter agreement at
// slot crossings, and global word uniqueness. The engine enforces node and arc
// consistency (AC-3) and then runs backtracking search with MRV/degree
// variable ordering, least-constraining-value ordering, and incremental arc
// propagation after each tentative binding.
package xwsolve

import (
	"context"

	"github.com/rs/zerolog/log"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

// Solver owns the mutable domain state for one solve over an immutable puzzle.
// A Solver is single-use: Solve consumes the seeded domains.
type Solver struct {
	pzl     *puzzle.Puzzle
	domains *Domains
}

func New(p *puzzle.Puzzle) *Solver {
	return &Solver{
		pzl:     p,
		domains: NewDomains(p),
	}
}

// Solve returns the first complete consistent assignment found, or ok=false if
// none exists. The false case is a definitive outcome, not an error. If node
// consistency or the initial arc-consistency pass empties any domain, the
// search is never entered.
//
// ctx is checked between branches; cancellation makes Solve return ok=false
// early, which the caller can distinguish via ctx.Err().
func (s *Solver) Solve(ctx context.Context) (Assignment, bool) {
	s.enforceNodeConsistency()
	for _, v := range s.pzl.Slots {
		if s.domains.Count(v) == 0 {
			log.Debug().Stringer("slot", v).Msg("no candidates of matching length")
			return nil, false
		}
	}

	if !s.runArcConsistency(nil) {
		return nil, false
	}

	log.Debug().Int("slots", len(s.pzl.Slots)).Msg("starting backtracking search")
	return s.backtrack(ctx, make(Assignment, len(s.pzl.Slots)))
}

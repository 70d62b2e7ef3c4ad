package xwsolve

import (
	"context"
	"reflect"
	"testing"

	"github.com/matryer/is"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

func TestSolve_CrossingSlots(t *testing.T) {
	is := is.New(t)
	// Two length-3 slots crossing on their middle cells: offsets (1,1).
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat"})

	asg, ok := New(p).Solve(context.Background())
	is.True(ok)
	assertValidAssignment(t, p, asg)

	across := asg[slotAt(t, p, 1, 0, puzzle.Across)]
	down := asg[slotAt(t, p, 0, 1, puzzle.Down)]
	is.Equal(across[1], down[1])
	is.True(across != down)
}

func TestSolve_UniqueSolution(t *testing.T) {
	is := is.New(t)
	// Only RAT across / ATE down fits: the across middle letter must start
	// the down word.
	p := mustPuzzle(t, []string{"___", "#_#", "#_#"}, []string{"rat", "ate"})

	asg, ok := New(p).Solve(context.Background())
	is.True(ok)
	is.Equal(asg[slotAt(t, p, 0, 0, puzzle.Across)], "RAT")
	is.Equal(asg[slotAt(t, p, 0, 1, puzzle.Down)], "ATE")
}

func TestSolve_NoWordOfMatchingLength(t *testing.T) {
	is := is.New(t)
	// Node consistency empties the slot's domain; the solve must fail
	// definitively without searching.
	p := mustPuzzle(t, []string{"____"}, []string{"cat", "dog"})

	asg, ok := New(p).Solve(context.Background())
	is.True(!ok)
	is.Equal(asg, nil)
}

func TestSolve_GlobalUniquenessAcrossDisjointSlots(t *testing.T) {
	is := is.New(t)
	// Two slots that never touch still may not reuse the only word.
	p := mustPuzzle(t, []string{"___", "###", "___"}, []string{"cat"})

	_, ok := New(p).Solve(context.Background())
	is.True(!ok)
}

func TestBacktrack_RestoresDomainsOnFailure(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"___", "###", "___"}, []string{"cat"})
	s := New(p)
	s.enforceNodeConsistency()
	is.True(s.runArcConsistency(nil))

	before := s.domains.Snapshot()
	_, ok := s.backtrack(context.Background(), make(Assignment))
	is.True(!ok)

	// Every branch was undone: the store is byte-for-byte what it was before
	// the search began.
	is.True(reflect.DeepEqual(s.domains.Snapshot(), before))
}

func TestSelectUnassignedSlot_MinimumRemainingValues(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat"})
	s := New(p)
	s.enforceNodeConsistency()

	down := slotAt(t, p, 0, 1, puzzle.Down)
	s.domains.Restrict(down, func(w string) bool { return w == "RAT" })

	is.Equal(s.selectUnassignedSlot(make(Assignment)), down)
}

func TestSelectUnassignedSlot_DegreeTieBreak(t *testing.T) {
	is := is.New(t)
	// All three slots have equal domains; the across slot crosses both down
	// slots and must win on degree.
	p := mustPuzzle(t, []string{"_#_", "___", "_#_"}, []string{"aba", "cbc", "xax"})
	s := New(p)
	s.enforceNodeConsistency()

	is.Equal(s.selectUnassignedSlot(make(Assignment)), slotAt(t, p, 1, 0, puzzle.Across))
}

func TestSelectUnassignedSlot_SkipsAssigned(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat"})
	s := New(p)
	s.enforceNodeConsistency()

	across := slotAt(t, p, 1, 0, puzzle.Across)
	down := slotAt(t, p, 0, 1, puzzle.Down)

	asg := Assignment{across: "CAT"}
	is.Equal(s.selectUnassignedSlot(asg), down)
}

func TestOrderCandidates_LeastConstrainingFirst(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "bat", "bog"})
	s := New(p)
	s.enforceNodeConsistency()

	across := slotAt(t, p, 1, 0, puzzle.Across)

	// Against the down domain {BAT, BOG, CAT}: BAT and CAT each eliminate two
	// (themselves plus BOG's mismatched middle letter); BOG eliminates all
	// three.
	is.Equal(s.orderCandidates(across, make(Assignment)), []string{"BAT", "CAT", "BOG"})
}

func TestOrderCandidates_IgnoresAssignedNeighbors(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "bat", "bog"})
	s := New(p)
	s.enforceNodeConsistency()

	across := slotAt(t, p, 1, 0, puzzle.Across)
	down := slotAt(t, p, 0, 1, puzzle.Down)

	// With the only neighbor assigned nothing is counted, so lexical order
	// falls out.
	asg := Assignment{down: "BAT"}
	is.Equal(s.orderCandidates(across, asg), []string{"BAT", "BOG", "CAT"})
}

func TestConsistent(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat", "toe"})
	s := New(p)

	across := slotAt(t, p, 1, 0, puzzle.Across)
	down := slotAt(t, p, 0, 1, puzzle.Down)

	is.True(s.consistent(Assignment{}))
	is.True(s.consistent(Assignment{across: "CAR"}))
	is.True(s.consistent(Assignment{across: "CAR", down: "RAT"}))

	// Duplicate word.
	is.True(!s.consistent(Assignment{across: "CAR", down: "CAR"}))
	// Wrong length.
	is.True(!s.consistent(Assignment{across: "CARS"}))
	// Overlap disagreement at the shared middle cell: 'A' vs 'O'.
	is.True(!s.consistent(Assignment{across: "CAR", down: "TOE"}))
}

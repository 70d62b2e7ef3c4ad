package xwsolve

import (
	"reflect"
	"testing"

	"github.com/matryer/is"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

func TestDomains_SeededWithFullVocabulary(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat", "horse"})

	d := NewDomains(p)
	for _, v := range p.Slots {
		// Unfiltered: even the wrong-length word is present until node consistency runs.
		is.Equal(d.Count(v), 4)
		is.True(d.Has(v, "HORSE"))
	}
}

func TestDomains_Restrict(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat"})
	across := slotAt(t, p, 1, 0, puzzle.Across)
	down := slotAt(t, p, 0, 1, puzzle.Down)

	d := NewDomains(p)
	removed := d.Restrict(across, func(w string) bool { return w[0] == 'C' })
	is.True(removed)
	is.Equal(d.Words(across), []string{"CAR", "CAT"})

	// Only the targeted slot shrinks.
	is.Equal(d.Count(down), 3)

	removed = d.Restrict(across, func(w string) bool { return w[0] == 'C' })
	is.True(!removed) // second pass removes nothing
}

func TestDomains_SnapshotRestore(t *testing.T) {
	is := is.New(t)
	p := mustPuzzle(t, []string{"#_#", "___", "#_#"}, []string{"cat", "car", "rat"})
	across := slotAt(t, p, 1, 0, puzzle.Across)

	d := NewDomains(p)
	snap := d.Snapshot()

	d.Assign(across, "CAT")
	is.Equal(d.Count(across), 1)

	d.Restore(snap)
	is.Equal(d.Words(across), []string{"CAR", "CAT", "RAT"})

	// The snapshot survives a restore and an ensuing mutation; restoring it
	// again still yields the original mapping.
	d.Restrict(across, func(w string) bool { return false })
	d.Restore(snap)
	is.True(reflect.DeepEqual(d.Snapshot(), snap))
}

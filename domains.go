package xwsolve

import (
	"maps"
	"slices"

	"crosswarped.com/xwsolve/pkg/puzzle"
)

// wordSet is a set of candidate words.
type wordSet map[string]struct{}

// Domains maps every slot to its current candidate word set. It is the single
// mutable structure shared by the consistency and search engines; only one of
// them mutates it at a time, and any mutation made while exploring a search
// branch is paired with a Snapshot/Restore so failed branches leave no trace.
type Domains struct {
	words map[puzzle.Slot]wordSet
}

// Snapshot is a deep copy of the full domain mapping.
type Snapshot map[puzzle.Slot]wordSet

// NewDomains seeds every slot with the full vocabulary. Length filtering is
// node consistency's job, not the store's.
func NewDomains(p *puzzle.Puzzle) *Domains {
	d := &Domains{words: make(map[puzzle.Slot]wordSet, len(p.Slots))}
	for _, v := range p.Slots {
		ws := make(wordSet, len(p.Words))
		for _, w := range p.Words {
			ws[w] = struct{}{}
		}
		d.words[v] = ws
	}
	return d
}

// Count returns the number of candidates remaining for v.
func (d *Domains) Count(v puzzle.Slot) int {
	return len(d.words[v])
}

// Has reports whether w is still a candidate for v.
func (d *Domains) Has(v puzzle.Slot, w string) bool {
	_, ok := d.words[v][w]
	return ok
}

// Words returns v's candidates in lexical order. The copy is the caller's to
// keep; mutating it does not affect the store.
func (d *Domains) Words(v puzzle.Slot) []string {
	ws := make([]string, 0, len(d.words[v]))
	for w := range d.words[v] {
		ws = append(ws, w)
	}
	slices.Sort(ws)
	return ws
}

// Restrict removes from v's domain every word the predicate rejects and
// reports whether anything was removed. No other slot's set is touched.
func (d *Domains) Restrict(v puzzle.Slot, keep func(word string) bool) bool {
	removed := false
	for w := range d.words[v] {
		if !keep(w) {
			delete(d.words[v], w)
			removed = true
		}
	}
	return removed
}

// Assign narrows v's domain to the single tentatively-assigned word. Callers
// snapshot first; this is only meaningful mid-search.
func (d *Domains) Assign(v puzzle.Slot, word string) {
	d.words[v] = wordSet{word: {}}
}

// Snapshot deep-copies the full mapping.
func (d *Domains) Snapshot() Snapshot {
	snap := make(Snapshot, len(d.words))
	for v, ws := range d.words {
		snap[v] = maps.Clone(ws)
	}
	return snap
}

// Restore resets the store to a snapshot. The snapshot is copied again, so it
// stays valid and can be restored more than once (one trial value per restore).
func (d *Domains) Restore(snap Snapshot) {
	d.words = make(map[puzzle.Slot]wordSet, len(snap))
	for v, ws := range snap {
		d.words[v] = maps.Clone(ws)
	}
}

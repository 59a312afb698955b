package wfc

// trailEntry records one mutation of one cell: the bits it lost and whether
// the mutation collapsed it.
type trailEntry struct {
	cell       int
	cleared    Bitset
	uncollapse bool
}

// trail is an undo log of cell mutations. A mark is the trail length at a
// restore point; rolling back to a mark replays the entries above it in
// reverse. This replaces whole-grid snapshots: saving a restore point is
// O(1) and restoring costs O(changes since the point).
type trail struct {
	entries []trailEntry
	marks   []int
	enabled bool
}

func (t *trail) record(cell int, cleared Bitset, collapsed bool) {
	if !t.enabled {
		return
	}
	if cleared.IsEmpty() && !collapsed {
		return
	}
	t.entries = append(t.entries, trailEntry{cell: cell, cleared: cleared, uncollapse: collapsed})
}

// push saves the current state as a restore point.
func (t *trail) push() {
	t.marks = append(t.marks, len(t.entries))
}

// depth returns the number of saved restore points.
func (t *trail) depth() int {
	return len(t.marks)
}

// pop removes the k most recent restore points and returns the trail
// length of the oldest one removed, which is the state to restore.
// k must be in [1, depth()].
func (t *trail) pop(k int) int {
	target := t.marks[len(t.marks)-k]
	t.marks = t.marks[:len(t.marks)-k]
	return target
}

// rewind undoes entries until the trail is n long.
func (t *trail) rewind(n int, cells []Cell) {
	for len(t.entries) > n {
		e := t.entries[len(t.entries)-1]
		t.entries = t.entries[:len(t.entries)-1]
		cells[e.cell].restore(e.cleared, e.uncollapse)
	}
}

// clear drops all entries and restore points.
func (t *trail) clear() {
	t.entries = t.entries[:0]
	t.marks = t.marks[:0]
}

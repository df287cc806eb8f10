// SPDX-License-Identifier: MIT

package butterfly

import "fmt"

// Table stores coefficient vectors per box and counterpart.
//
// Slot (box, counterpart) is a Q^D run inside one flat buffer per box, so a
// box's vectors are contiguous and counterpart-ordered. Boxes are addressed
// by arena ID, counterparts by their Index within the paired level.
//
// Writes to different boxes may proceed concurrently; Allocate and Release
// on a box must not race with operators touching that box.
type Table struct {
	size  int
	slots [][]complex128
}

// NewTable returns a table for numBoxes arena IDs holding vectors of length
// size (Q^D). No slot is allocated yet.
func NewTable(numBoxes, size int) (*Table, error) {
	if size < 1 {
		return nil, fmt.Errorf("size %d: %w", size, ErrCoefficientLength)
	}

	return &Table{size: size, slots: make([][]complex128, numBoxes)}, nil
}

// Size returns the coefficient vector length.
func (t *Table) Size() int { return t.size }

// NumBoxes returns the number of addressable box IDs.
func (t *Table) NumBoxes() int { return len(t.slots) }

// Allocate gives box room for counterparts zeroed vectors, reusing
// existing capacity.
func (t *Table) Allocate(box, counterparts int) {
	n := counterparts * t.size
	buf := t.slots[box]
	if cap(buf) >= n {
		buf = buf[:n]
		clear(buf)
	} else {
		buf = make([]complex128, n)
	}
	t.slots[box] = buf
}

// Release drops box's vectors.
func (t *Table) Release(box int) { t.slots[box] = nil }

// Reset zeroes every allocated vector, keeping shapes.
func (t *Table) Reset() {
	for _, buf := range t.slots {
		clear(buf)
	}
}

// Counterparts returns how many vectors box holds (0 if unallocated or out of range).
func (t *Table) Counterparts(box int) int {
	if box < 0 || box >= len(t.slots) {
		return 0
	}

	return len(t.slots[box]) / t.size
}

// Vector returns the slot for (box, counterpart) as a length-Size view into
// the table. Out-of-range access panics like a slice index.
func (t *Table) Vector(box, counterpart int) []complex128 {
	off := counterpart * t.size
	return t.slots[box][off : off+t.size : off+t.size]
}

// Set copies vec into slot (box, counterpart).
// Returns ErrCoefficientLength when len(vec) != Size and ErrCounterpartCount
// when the slot does not exist.
func (t *Table) Set(box, counterpart int, vec []complex128) error {
	if len(vec) != t.size {
		return fmt.Errorf("len %d, want %d: %w", len(vec), t.size, ErrCoefficientLength)
	}
	if counterpart < 0 || counterpart >= t.Counterparts(box) {
		return fmt.Errorf("box %d counterpart %d: %w", box, counterpart, ErrCounterpartCount)
	}
	copy(t.Vector(box, counterpart), vec)

	return nil
}

// expect checks that box holds exactly counterparts vectors.
func (t *Table) expect(box, counterparts int) error {
	if got := t.Counterparts(box); got != counterparts {
		return fmt.Errorf("box %d holds %d counterparts, want %d: %w", box, got, counterparts, ErrCounterpartCount)
	}

	return nil
}

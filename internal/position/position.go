// Package position computes the shifts that keep sibling positions dense.
//
// Columns of a board and tasks of a column carry a zero-based position that
// must stay contiguous and unique within their parent. Every insert, move and
// remove is described here as a Plan: a list of range shifts to apply to the
// siblings, followed by the placement of the affected item. Nothing in this
// package touches storage; repositories apply plans inside one transaction.
package position

import (
	"errors"
	"fmt"
	"sort"
)

// Unbounded marks a Shift with no upper limit.
const Unbounded = -1

var ErrNotContiguous = errors.New("positions are not contiguous")

// Shift adds Delta to every sibling under ParentID whose position lies in
// [Min, Max]. Max == Unbounded leaves the range open-ended.
type Shift struct {
	ParentID string
	Min      int
	Max      int
	Delta    int
}

func (s Shift) Covers(parentID string, position int) bool {
	if parentID != s.ParentID || position < s.Min {
		return false
	}
	return s.Max == Unbounded || position <= s.Max
}

// Apply returns the position a sibling ends up at after the shift.
func (s Shift) Apply(parentID string, position int) int {
	if s.Covers(parentID, position) {
		return position + s.Delta
	}
	return position
}

func (s Shift) String() string {
	upper := "∞"
	if s.Max != Unbounded {
		upper = fmt.Sprint(s.Max)
	}
	return fmt.Sprintf("%s[%d..%s]%+d", s.ParentID, s.Min, upper, s.Delta)
}

type Placement struct {
	ParentID string
	Position int
}

type Plan struct {
	Shifts    []Shift
	Placement Placement
}

// NextPosition is the slot right after the current maximum, or 0 when the
// parent has no children yet.
func NextPosition(max *int) int {
	if max == nil {
		return 0
	}
	return *max + 1
}

// Insert plans the creation of an item under parentID. Without a requested
// position the item is appended; otherwise the request is clamped to
// [0, NextPosition(max)] and the siblings at or after it move up by one.
func Insert(parentID string, requested *int, max *int) Plan {
	end := NextPosition(max)
	plan := Plan{Placement: Placement{ParentID: parentID, Position: end}}
	if requested == nil {
		return plan
	}

	at := clamp(*requested, 0, end)
	plan.Placement.Position = at
	if at < end {
		plan.Shifts = []Shift{{ParentID: parentID, Min: at, Max: Unbounded, Delta: 1}}
	}
	return plan
}

// Remove plans the deletion of the item at removed: every later sibling moves
// down by one to close the gap.
func Remove(parentID string, removed int) Plan {
	return Plan{
		Shifts:    []Shift{{ParentID: parentID, Min: removed + 1, Max: Unbounded, Delta: -1}},
		Placement: Placement{ParentID: parentID, Position: removed},
	}
}

// Move plans moving an item from one placement to another. targetMax is the
// current maximum position under to.ParentID; for a move inside the same
// parent it includes the moved item itself.
func Move(from, to Placement, targetMax *int) Plan {
	if from.ParentID == to.ParentID {
		return moveWithin(from, to, targetMax)
	}
	return moveAcross(from, to, targetMax)
}

func moveWithin(from, to Placement, max *int) Plan {
	last := 0
	if max != nil {
		last = *max
	}
	target := clamp(to.Position, 0, last)
	plan := Plan{Placement: Placement{ParentID: from.ParentID, Position: target}}

	switch {
	case target > from.Position:
		plan.Shifts = []Shift{{ParentID: from.ParentID, Min: from.Position + 1, Max: target, Delta: -1}}
	case target < from.Position:
		plan.Shifts = []Shift{{ParentID: from.ParentID, Min: target, Max: from.Position - 1, Delta: 1}}
	}
	return plan
}

func moveAcross(from, to Placement, max *int) Plan {
	target := clamp(to.Position, 0, NextPosition(max))
	return Plan{
		Shifts: []Shift{
			{ParentID: from.ParentID, Min: from.Position + 1, Max: Unbounded, Delta: -1},
			{ParentID: to.ParentID, Min: target, Max: Unbounded, Delta: 1},
		},
		Placement: Placement{ParentID: to.ParentID, Position: target},
	}
}

// Moves reports whether the plan changes anything at all.
func (p Plan) Moves(from Placement) bool {
	return len(p.Shifts) > 0 || p.Placement != from
}

// Check verifies that positions are exactly {0, ..., len-1}.
func Check(positions []int) error {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return fmt.Errorf("%w: expected %d at index %d, got %d", ErrNotContiguous, i, i, p)
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

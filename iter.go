package gridbox

// BoxIter visits every coordinate in a box in canonical traversal order:
// dimension 0 varies fastest, then dimension 1, then (in three dimensions)
// dimension 2. This order is the layout contract shared by Array buffers,
// region copies, and linear (de)serialization.
//
//	for it := gridbox.NewBoxIter(box); it.Ok(); it.Next() {
//		c := it.Coord()
//		...
//	}
//
// The iterator is restartable via Reset and cheap to copy.
type BoxIter struct {
	box Box
	cur Coord
}

// NewBoxIter returns an iterator positioned at the lower corner of the box.
func NewBoxIter(b Box) BoxIter {
	return BoxIter{box: b, cur: b.Lo()}
}

// Coord returns the current coordinate.
func (it *BoxIter) Coord() Coord { return it.cur }

// Ok reports whether the iterator still points inside the box. After the last
// coordinate, Next moves one past the box's upper bound in the highest
// dimension and Ok returns false.
func (it *BoxIter) Ok() bool {
	return it.box.Contains(it.cur)
}

// Next advances to the next coordinate in canonical order.
func (it *BoxIter) Next() {
	if it.cur[0] < it.box.hi[0] {
		it.cur[0]++
		return
	}
	it.cur[0] = it.box.lo[0]
	for d := 1; d < SpaceDim; d++ {
		if it.cur[d] < it.box.hi[d] || d == SpaceDim-1 {
			it.cur[d]++
			return
		}
		it.cur[d] = it.box.lo[d]
	}
}

// Jump advances the iterator by a coordinate delta without walking the cells
// in between. The result may land outside the box, in which case Ok reports
// false.
func (it *BoxIter) Jump(delta Coord) {
	it.cur = it.cur.Add(delta)
}

// Reset repositions the iterator at the lower corner of its box.
func (it *BoxIter) Reset() {
	it.cur = it.box.Lo()
}

// Equal reports whether two iterators are at the same position. Comparing
// iterators built over different boxes is a contract error.
func (it *BoxIter) Equal(o *BoxIter) bool {
	assert(it.box == o.box, "comparing iterators over different boxes")
	return it.cur == o.cur
}

package gridbox

import "fmt"

// Box is an axis-aligned region of the index space, inclusive on both ends.
// It is a plain value type with no shared ownership; every operation returns
// a new Box. A Box is empty when hi[d] < lo[d] in any dimension; empty boxes
// arise from intersection and from the zero value, never from NewBox.
//
// Size and strides are derived on demand and never cached: a Box stays two
// coordinates wide no matter how it is used, and device code can rebuild the
// layout math without any per-box state.
type Box struct {
	lo Coord
	hi Coord
}

// EmptyBox returns the canonical empty box (lo = unit, hi = zero).
func EmptyBox() Box {
	return Box{lo: UnitCoord, hi: ZeroCoord}
}

// NewBox builds a box from its lower and upper corners. lo must be dominated
// by hi in every dimension; violating this is a contract error.
func NewBox(lo, hi Coord) Box {
	assert(lo.AllLE(hi), "malformed box: lo must be <= hi componentwise")
	return Box{lo: lo, hi: hi}
}

// Lo returns the lower corner.
func (b Box) Lo() Coord { return b.lo }

// Hi returns the upper corner.
func (b Box) Hi() Coord { return b.hi }

// LoDir returns the lower bound in one dimension.
func (b Box) LoDir(dir int) int { return b.lo[dir] }

// HiDir returns the upper bound in one dimension.
func (b Box) HiDir(dir int) int { return b.hi[dir] }

// Grow expands the box by n cells on every side. Negative n shrinks.
func (b Box) Grow(n int) Box {
	b.lo = b.lo.SubScalar(n)
	b.hi = b.hi.AddScalar(n)
	return b
}

// GrowDir expands the box by n cells on both sides of one dimension.
// Negative n shrinks.
func (b Box) GrowDir(n, dir int) Box {
	assert(dir >= 0 && dir < SpaceDim, "direction out of range")
	b.lo[dir] -= n
	b.hi[dir] += n
	return b
}

// GrowLo moves the lower side of one dimension outward by n cells.
func (b Box) GrowLo(n, dir int) Box {
	b.lo[dir] -= n
	return b
}

// GrowHi moves the upper side of one dimension outward by n cells.
func (b Box) GrowHi(n, dir int) Box {
	b.hi[dir] += n
	return b
}

// GrowHiAll moves the upper corner outward by n cells in every dimension
// (cell-centered to vertex-centered conversion).
func (b Box) GrowHiAll(n int) Box {
	b.hi = b.hi.AddScalar(n)
	return b
}

// Shift translates the box by a coordinate delta.
func (b Box) Shift(delta Coord) Box {
	b.lo = b.lo.Add(delta)
	b.hi = b.hi.Add(delta)
	return b
}

// ShiftDir translates the box by n cells in one dimension.
func (b Box) ShiftDir(n, dir int) Box {
	b.lo[dir] += n
	b.hi[dir] += n
	return b
}

// AdjCells returns the n-cell slab at the face of the box selected by dir and
// side (side > 0 is the upper face, side <= 0 the lower). For n > 0 the slab
// lies just outside the face; for n < 0 it is instead the |n|-cell slab just
// inside the face (the trailing interior layer).
func (b Box) AdjCells(n, dir, side int) Box {
	switch {
	case n > 0 && side > 0:
		b.hi[dir] += n
		b.lo[dir] = b.hi[dir] - n + 1
	case n > 0 && side <= 0:
		b.lo[dir] -= n
		b.hi[dir] = b.lo[dir] + n - 1
	case n < 0 && side > 0:
		b.lo[dir] = b.hi[dir] + n + 1
	case n < 0 && side <= 0:
		b.hi[dir] = b.lo[dir] - n - 1
	}
	return b
}

// Intersect returns the intersection of the two boxes: componentwise max of
// the lower corners and min of the upper. The result may be empty; callers
// must check Empty before using it.
func (b Box) Intersect(o Box) Box {
	b.lo = b.lo.Max(o.lo)
	b.hi = b.hi.Min(o.hi)
	return b
}

// Contains reports whether the coordinate lies in the box (inclusive).
func (b Box) Contains(c Coord) bool {
	return b.lo.AllLE(c) && c.AllLE(b.hi)
}

// ContainsBox reports whether o lies entirely in the box.
func (b Box) ContainsBox(o Box) bool {
	return b.lo.AllLE(o.lo) && o.hi.AllLE(b.hi)
}

// Size returns the number of cells in the box.
func (b Box) Size() int {
	n := 1
	for d := 0; d < SpaceDim; d++ {
		n *= b.hi[d] - b.lo[d] + 1
	}
	return n
}

// Dims returns the extent of the box in each dimension.
func (b Box) Dims() Coord {
	var c Coord
	for d := 0; d < SpaceDim; d++ {
		c[d] = b.hi[d] - b.lo[d] + 1
	}
	return c
}

// Empty reports whether the box contains no cells.
func (b Box) Empty() bool {
	for d := 0; d < SpaceDim; d++ {
		if b.hi[d] < b.lo[d] {
			return true
		}
	}
	return false
}

// String formats the box as [lo, hi].
func (b Box) String() string {
	return fmt.Sprintf("[%v, %v]", b.lo, b.hi)
}

// Stride returns the strides of a buffer laid out over this box in canonical
// order: stride[0] = 1, stride[d] = stride[d-1] * dim[d-1]. Recomputed on
// every call; a Box never caches layout.
func (b Box) Stride() Coord {
	var s Coord
	s[0] = 1
	for d := 1; d < SpaceDim; d++ {
		s[d] = s[d-1] * (b.hi[d-1] - b.lo[d-1] + 1)
	}
	return s
}

// Offset returns the base offset accounting for a non-zero lower corner:
// added to a raw linear index (LinearIndex0 of an absolute coordinate) it
// yields a valid zero-based index into a buffer over this box.
func (b Box) Offset(stride Coord) int {
	return LinearIndex0(b.lo.Neg(), stride)
}

// LinearIndex0 converts a coordinate to a zero-based linear index under the
// given strides. No account is taken of a non-zero lower corner; combine with
// Offset for absolute coordinates.
func LinearIndex0(c, stride Coord) int {
	n := c[0]
	for d := 1; d < SpaceDim; d++ {
		n += c[d] * stride[d]
	}
	return n
}

// CoordOf converts a box-based linear index (0 at the lower corner) back to
// the absolute coordinate it addresses. The index must resolve to a location
// in the box.
func (b Box) CoordOf(lin int, stride Coord) Coord {
	var c Coord
	for d := SpaceDim - 1; d >= 1; d-- {
		q := lin / stride[d]
		c[d] = q + b.lo[d]
		lin -= q * stride[d]
	}
	c[0] = lin + b.lo[0]
	return c
}

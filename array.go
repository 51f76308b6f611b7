package gridbox

import "unsafe"

// allocMode records how an Array's buffer came to be. Exactly one mode holds
// at a time; aliasing suppresses ownership entirely.
type allocMode uint8

const (
	allocNone  allocMode = iota // no buffer defined
	allocOwned                  // buffer allocated by the Array
	allocAlias                  // buffer borrowed from the caller
)

// Array is a host-owned, multi-component array over a Box. Storage is
// component-major: all cells of component 0, then all cells of component 1,
// and so on, each component laid out in the canonical BoxIter order.
//
// An Array is a single-owner resource: it is not safe for concurrent
// mutation from multiple goroutines without external synchronization.
type Array[T any] struct {
	box    Box
	stride Coord
	ncomp  int
	size   int // cells per component
	data   []T
	mode   allocMode
	mirror *Mirror
}

// ArrayOption configures construction or redefinition of an Array.
type ArrayOption[T any] func(*arrayOptions[T])

type arrayOptions[T any] struct {
	fill    *T
	alias   []T
	aliased bool
}

// WithFill initializes every element of the defined buffer to v.
func WithFill[T any](v T) ArrayOption[T] {
	return func(o *arrayOptions[T]) {
		o.fill = &v
	}
}

// WithAlias borrows buf as the Array's storage instead of allocating. The
// Array never frees a borrowed buffer, and buf must hold at least
// box.Size()*ncomp elements.
func WithAlias[T any](buf []T) ArrayOption[T] {
	return func(o *arrayOptions[T]) {
		o.alias = buf
		o.aliased = true
	}
}

// NewArray creates an Array over box with ncomp components.
func NewArray[T any](box Box, ncomp int, opts ...ArrayOption[T]) *Array[T] {
	a := &Array[T]{}
	a.Define(box, ncomp, opts...)
	return a
}

// Define (re)defines the Array over box with ncomp components, allocating a
// fresh buffer unless WithAlias supplies one. Any previous definition,
// including a device mirror, is dropped.
func (a *Array[T]) Define(box Box, ncomp int, opts ...ArrayOption[T]) {
	assert(ncomp > 0, "array needs at least one component")
	var o arrayOptions[T]
	for _, opt := range opts {
		opt(&o)
	}

	a.Release()
	a.box = box
	a.ncomp = ncomp
	a.setStride()

	n := a.size * ncomp
	if o.aliased {
		assert(len(o.alias) >= n, "alias buffer smaller than box.Size()*ncomp")
		a.data = o.alias[:n]
		a.mode = allocAlias
	} else {
		a.data = make([]T, n)
		a.mode = allocOwned
	}
	if o.fill != nil {
		a.FillAll(*o.fill)
	}
}

// setStride derives strides and the per-component cell count from the box.
func (a *Array[T]) setStride() {
	lo, hi := a.box.Lo(), a.box.Hi()
	assert(lo.AllLE(hi), "array box is malformed")
	a.stride = a.box.Stride()
	a.size = a.stride[SpaceDim-1] * (hi[SpaceDim-1] - lo[SpaceDim-1] + 1)
}

// Box returns the box the Array is defined over.
func (a *Array[T]) Box() Box { return a.box }

// NComp returns the number of components.
func (a *Array[T]) NComp() int { return a.ncomp }

// Size returns the total number of elements across all components.
func (a *Array[T]) Size() int { return a.ncomp * a.size }

// SizeBytes returns the total number of bytes held by the buffer.
func (a *Array[T]) SizeBytes() uintptr {
	var zero T
	return uintptr(a.Size()) * unsafe.Sizeof(zero)
}

// Defined reports whether the Array currently has a buffer.
func (a *Array[T]) Defined() bool { return a.mode != allocNone }

// Index converts a coordinate to the linear cell index within one component.
func (a *Array[T]) Index(c Coord) int {
	assert(a.box.Contains(c), "coordinate outside array box")
	return LinearIndex0(c.Sub(a.box.Lo()), a.stride)
}

// At returns the element at coordinate c of component comp.
func (a *Array[T]) At(c Coord, comp int) T {
	assert(comp >= 0 && comp < a.ncomp, "component out of range")
	return a.data[comp*a.size+a.Index(c)]
}

// Set stores v at coordinate c of component comp.
func (a *Array[T]) Set(c Coord, comp int, v T) {
	assert(comp >= 0 && comp < a.ncomp, "component out of range")
	a.data[comp*a.size+a.Index(c)] = v
}

// Ref returns a pointer to the element at coordinate c of component comp.
func (a *Array[T]) Ref(c Coord, comp int) *T {
	assert(comp >= 0 && comp < a.ncomp, "component out of range")
	return &a.data[comp*a.size+a.Index(c)]
}

// Fill assigns v to every cell of one component.
func (a *Array[T]) Fill(comp int, v T) {
	assert(comp >= 0 && comp < a.ncomp, "component out of range")
	s := a.data[comp*a.size : (comp+1)*a.size]
	for i := range s {
		s[i] = v
	}
}

// FillAll assigns v to every element of every component.
func (a *Array[T]) FillAll(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Data returns the backing buffer. The layout is component-major; mutating it
// directly bypasses bounds checks.
func (a *Array[T]) Data() []T { return a.data }

// ComponentData returns the slice of one component's cells.
func (a *Array[T]) ComponentData(comp int) []T {
	assert(comp >= 0 && comp < a.ncomp, "component out of range")
	return a.data[comp*a.size : (comp+1)*a.size]
}

// Stride returns the spatial strides of the buffer.
func (a *Array[T]) Stride() Coord { return a.stride }

// ComponentStride returns the element distance between components.
func (a *Array[T]) ComponentStride() int { return a.size }

// CopyRegion copies all components of src over region box. The region must
// lie in both arrays and both must have the same component count.
func (a *Array[T]) CopyRegion(box Box, src *Array[T]) {
	assert(a.ncomp == src.ncomp, "component count mismatch")
	a.Copy(box, 0, src, box, 0, a.ncomp, AllComps)
}

// Copy copies numComp components of a region of src into this Array. Each
// destination cell receives the source cell at the same offset from its own
// box's lower corner, so the two regions may sit at different locations but
// must have the same shape. mask selects which of the numComp components are
// copied; use AllComps for all of them.
func (a *Array[T]) Copy(dstBox Box, dstComp int, src *Array[T], srcBox Box, srcComp, numComp int, mask CompMask) {
	assert(dstBox.Dims() == srcBox.Dims(), "copy regions differ in shape")
	assert(a.box.ContainsBox(dstBox), "destination region outside array box")
	assert(src.box.ContainsBox(srcBox), "source region outside array box")
	assert(dstComp >= 0 && dstComp+numComp <= a.ncomp, "destination components out of range")
	assert(srcComp >= 0 && srcComp+numComp <= src.ncomp, "source components out of range")
	assert(numComp <= maskBits, "component range wider than the mask")

	shift := srcBox.Lo().Sub(dstBox.Lo())
	for ic := 0; ic < numComp; ic++ {
		if !mask.Has(ic) {
			continue
		}
		for it := NewBoxIter(dstBox); it.Ok(); it.Next() {
			c := it.Coord()
			a.Set(c, dstComp+ic, src.At(c.Add(shift), srcComp+ic))
		}
	}
}

// Release drops the buffer and any device mirror. Borrowed buffers are left
// untouched; the Array simply stops referencing them.
func (a *Array[T]) Release() {
	if a.mirror != nil {
		a.mirror.release()
		a.mirror = nil
	}
	a.data = nil
	a.mode = allocNone
}

package device

import (
	"unsafe"

	"github.com/gogpu/gridbox"
)

// DescriptorSlots is the number of fixed-size slots in a View descriptor:
// the box corners and strides component by component, then the scalar
// fields and the storage reference. CooperativeDefine assigns one worker
// per slot.
const DescriptorSlots = 3*gridbox.SpaceDim + 4

// View gives strided access to a flat buffer over a box, component-major
// with the same cell ordering as gridbox.Array. A View never owns its
// storage; it is a descriptor over memory someone else allocated. Strides
// and the base offset are computed when the view is defined, never shared
// with a host-side Array, since host and device memory are not mutually
// addressable in general.
type View[T any] struct {
	lo     gridbox.Coord
	hi     gridbox.Coord
	stride gridbox.Coord
	ncomp  int
	size   int
	off    int
	data   []T
}

// NewView creates a view of ncomp components over box, aliasing data.
func NewView[T any](data []T, box gridbox.Box, ncomp int) *View[T] {
	v := &View[T]{}
	v.Define(data, box, ncomp)
	return v
}

// ViewOf derives a view over the device half of a mirrored Array. It fails
// when the Array has no mirror or the mirror's storage cannot be addressed
// from the host.
func ViewOf[T any](a *gridbox.Array[T]) (*View[T], error) {
	m := a.Mirror()
	if m == nil {
		return nil, gridbox.ErrNoMirror
	}
	raw, ok := m.Device().Bytes()
	if !ok {
		return nil, gridbox.ErrNotAddressable
	}
	var zero T
	data := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), len(raw)/int(unsafe.Sizeof(zero)))
	return NewView(data, a.Box(), a.NComp()), nil
}

// Define points the view at data over box with ncomp components.
func (v *View[T]) Define(data []T, box gridbox.Box, ncomp int) {
	assert(ncomp > 0, "view needs at least one component")
	v.lo, v.hi = box.Lo(), box.Hi()
	v.stride = box.Stride()
	v.size = box.Size()
	v.ncomp = ncomp
	v.off = box.Offset(v.stride)
	v.data = data
	assert(len(data) >= ncomp*v.size, "view buffer too small for box and components")
}

// Box returns the view's domain.
func (v *View[T]) Box() gridbox.Box { return gridbox.NewBox(v.lo, v.hi) }

// NComp returns the number of components.
func (v *View[T]) NComp() int { return v.ncomp }

// Size returns the number of cells per component.
func (v *View[T]) Size() int { return v.size }

// Data returns the aliased storage.
func (v *View[T]) Data() []T { return v.data }

// Index converts an absolute coordinate to a zero-based storage index
// within one component.
func (v *View[T]) Index(c gridbox.Coord) int {
	return v.off + gridbox.LinearIndex0(c, v.stride)
}

// At returns the value at c in component comp.
func (v *View[T]) At(c gridbox.Coord, comp int) T {
	return v.data[comp*v.size+v.Index(c)]
}

// Set stores x at c in component comp.
func (v *View[T]) Set(c gridbox.Coord, comp int, x T) {
	v.data[comp*v.size+v.Index(c)] = x
}

// Shift translates the view's domain by n cells along dir. The base offset
// moves with it, so the storage that was reached through a coordinate is
// afterwards reached through the shifted coordinate at the same cost.
func (v *View[T]) Shift(n, dir int) {
	v.lo[dir] += n
	v.hi[dir] += n
	v.off -= n * v.stride[dir]
}

// CooperativeDefine copies the descriptor of src into v with one worker per
// slot: workers [firstWorker, firstWorker+DescriptorSlots) each write one
// disjoint field, and any other worker moves nothing. The group must hold at
// least firstWorker+DescriptorSlots workers. Callers publish the copy with a
// barrier; CooperativeDefine itself does not synchronize.
func (v *View[T]) CooperativeDefine(w *Worker, src *View[T], firstWorker int) {
	assert(w.Count()-firstWorker >= DescriptorSlots,
		"too few workers for a cooperative descriptor copy")
	slot := w.Index() - firstWorker
	if slot < 0 || slot >= DescriptorSlots {
		return
	}
	const d = gridbox.SpaceDim
	switch {
	case slot < d:
		v.lo[slot] = src.lo[slot]
	case slot < 2*d:
		v.hi[slot-d] = src.hi[slot-d]
	case slot < 3*d:
		v.stride[slot-2*d] = src.stride[slot-2*d]
	case slot == 3*d:
		v.ncomp = src.ncomp
	case slot == 3*d+1:
		v.size = src.size
	case slot == 3*d+2:
		v.off = src.off
	default:
		v.data = src.data
	}
}

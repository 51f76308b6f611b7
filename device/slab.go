package device

import "github.com/gogpu/gridbox"

// MaxSlabs bounds the window width of a SlabCache. The permutation table is
// sized for it at compile time so that no allocation happens in the device
// regime.
const MaxSlabs = 8

// loadMode is the slab load strategy, selected once when the cache is
// defined from the worker count W and the points per slab S.
type loadMode int8

const (
	loadUnset      loadMode = iota
	loadWholeGroup          // W == S: the whole group loads a slab in one step
	loadSubset              // S <= W: the first S active workers load, the rest idle
)

// SlabCache keeps a sliding window of codimension-1 slabs from a source view
// resident in a small caller-supplied buffer. The window covers an inclusive
// range of logical positions along the normal direction; a permutation table
// maps each logical position to the physical slot holding it, so shifting
// the window relabels slots instead of moving data. Only the positions a
// shift newly exposes are read from the source.
//
// All operations are cooperative: every worker of the group calls them, and
// group-wide barriers inside are the only synchronization.
type SlabCache[T any] struct {
	View[T]
	table      [MaxSlabs]int32
	nrmDir     int
	slabPoints int
	mode       loadMode
	src        *View[T]
	srcCompBeg int
}

// Define establishes the cache over src with the window at logical positions
// [beg, end] along nrmDir, then loads every position in order. The window
// must span at least two positions; a single-slab window has nothing to
// shift. The cache
// exposes ncomp components; cached component c holds source component
// srcCompBeg+c. data must hold ncomp*Size() elements and is not owned.
//
// The returned coordinate is the worker's fixed cell assignment for slab
// loads; callers pass it back to ShiftLoad and LoadSlab unchanged.
func (s *SlabCache[T]) Define(w *Worker, src *View[T], nrmDir, beg, end, ncomp, srcCompBeg int, data []T) gridbox.Coord {
	if w.Leader() {
		width := end - beg + 1
		assert(width > 1 && width <= MaxSlabs, "window width out of range")
		assert(nrmDir >= 0 && nrmDir < gridbox.SpaceDim, "invalid normal direction")
		lo, hi := src.lo, src.hi
		lo[nrmDir], hi[nrmDir] = beg, end
		box := gridbox.NewBox(lo, hi)
		s.lo, s.hi = lo, hi
		s.stride = box.Stride()
		s.size = box.Size()
		s.ncomp = ncomp
		// Physical slots index from zero along the normal direction.
		zlo := lo
		zlo[nrmDir] = 0
		s.off = gridbox.LinearIndex0(zlo.Neg(), s.stride)
		s.data = data
		s.src = src
		s.srcCompBeg = srcCompBeg
		s.nrmDir = nrmDir
		s.slabPoints = s.size / width
		for i := range s.table {
			s.table[i] = int32(i)
		}
		s.mode = selectLoadMode(w.Count(), s.slabPoints)
		assert(len(data) >= ncomp*s.size, "slab buffer too small for window and components")
	}
	w.Sync()
	work := s.workerCoord(w, 0)
	for p := beg; p <= end; p++ {
		s.LoadSlab(w, p, work, 0, w.Count())
	}
	w.Sync()
	return work
}

func selectLoadMode(workers, points int) loadMode {
	switch {
	case workers == points:
		return loadWholeGroup
	case points <= workers:
		return loadSubset
	}
	assert(false, "worker group too small to load a slab")
	return loadUnset
}

// workerCoord assigns the worker its cell within a slab cross-section. The
// normal coordinate is filled in per load. Workers outside the active range
// get a placeholder they never use.
func (s *SlabCache[T]) workerCoord(w *Worker, firstWorker int) gridbox.Coord {
	k := w.Index() - firstWorker
	if k < 0 || k >= s.slabPoints {
		return s.lo
	}
	lo, hi := s.lo, s.hi
	hi[s.nrmDir] = lo[s.nrmDir]
	slab := gridbox.NewBox(lo, hi)
	return slab.CoordOf(k, slab.Stride())
}

// Width returns the number of logical positions in the window.
func (s *SlabCache[T]) Width() int { return s.hi[s.nrmDir] - s.lo[s.nrmDir] + 1 }

// Index converts an absolute coordinate to a storage index within one
// component. The normal coordinate routes through the permutation table
// before the stride math.
func (s *SlabCache[T]) Index(c gridbox.Coord) int {
	iv := c
	iv[s.nrmDir] = int(s.table[c[s.nrmDir]-s.lo[s.nrmDir]])
	return s.off + gridbox.LinearIndex0(iv, s.stride)
}

// At returns the cached value at c in component comp. c's normal coordinate
// must lie inside the window.
func (s *SlabCache[T]) At(c gridbox.Coord, comp int) T {
	return s.data[comp*s.size+s.Index(c)]
}

// Set stores x at c in component comp.
func (s *SlabCache[T]) Set(c gridbox.Coord, comp int, x T) {
	s.data[comp*s.size+s.Index(c)] = x
}

// LoadSlab fills the slab at logical position pos from the source view.
// Workers [firstWorker, firstWorker+numWorkers) participate; each active
// worker copies its assigned cell for every configured component, reading
// the source at the identical coordinate. work is the assignment Define
// returned for this worker.
func (s *SlabCache[T]) LoadSlab(w *Worker, pos int, work gridbox.Coord, firstWorker, numWorkers int) {
	switch s.mode {
	case loadWholeGroup:
		assert(numWorkers == s.slabPoints, "whole-group load needs exactly one worker per point")
	case loadSubset:
		assert(numWorkers >= s.slabPoints, "subset load needs at least one worker per point")
	default:
		assert(false, "slab cache is not defined")
	}
	k := w.Index() - firstWorker
	if k < 0 || k >= s.slabPoints {
		return
	}
	iv := work
	iv[s.nrmDir] = pos
	for c := 0; c < s.ncomp; c++ {
		s.Set(iv, c, s.src.At(iv, s.srcCompBeg+c))
	}
}

// Shift advances the window n logical positions along the normal direction
// (n may be negative) without moving any data. The leader translates the
// box; every worker with index below the window width retargets its own
// table slot by a positive bias congruent to n modulo the width; the closing
// barrier publishes box and table together. Cost is O(width) regardless of
// the magnitude of n.
func (s *SlabCache[T]) Shift(w *Worker, n int) {
	width := s.Width()
	assert(w.Count() >= width, "worker group smaller than window width")
	w.Sync()
	if w.Leader() {
		s.lo[s.nrmDir] += n
		s.hi[s.nrmDir] += n
	}
	if i := w.Index(); i < width {
		s.table[i] = int32((int(s.table[i]) + shiftBias(n, width)) % width)
	}
	w.Sync()
}

// shiftBias returns a positive increment congruent to n modulo width, so
// that the table update stays non-negative for negative n.
func shiftBias(n, width int) int {
	a := n
	if a < 0 {
		a = -a
	}
	return n + ((a-1)/width+1)*width
}

// ShiftLoad shifts the window by n and then loads exactly the newly exposed
// positions: the leading |n| at the high end for n > 0, the trailing |n| at
// the low end for n < 0, capped at the window width. Positions that stay in
// the window are not re-read from the source.
func (s *SlabCache[T]) ShiftLoad(w *Worker, n int, work gridbox.Coord) {
	if n == 0 {
		return
	}
	s.Shift(w, n)
	count := n
	if count < 0 {
		count = -count
	}
	if width := s.Width(); count > width {
		count = width
	}
	if n > 0 {
		hi := s.hi[s.nrmDir]
		for p := hi - count + 1; p <= hi; p++ {
			s.LoadSlab(w, p, work, 0, w.Count())
		}
	} else {
		lo := s.lo[s.nrmDir]
		for p := lo; p < lo+count; p++ {
			s.LoadSlab(w, p, work, 0, w.Count())
		}
	}
	w.Sync()
}

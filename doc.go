// Package gridbox provides the indexing and memory-layout core of a
// structured-grid numerical framework for Go.
//
// # Overview
//
// gridbox maps rectangular regions of an integer index space ("boxes") to
// strided physical storage on the host and, optionally, on an accelerator.
// The same stride arithmetic is used on both sides, so host code and
// cooperative device workers index data identically. On top of this it
// provides a sliding-window slab cache that lets a worker group sweep a
// multi-dimensional domain while keeping only a bounded window of data layers
// resident, reloading exactly the layers a window advance exposes.
//
// # Quick Start
//
//	import "github.com/gogpu/gridbox"
//
//	// A 16x16x16 cell-centered region with two components.
//	box := gridbox.NewBox(gridbox.MakeCoord(0, 0, 0), gridbox.MakeCoord(15, 15, 15))
//	arr := gridbox.NewArray[float64](box, 2, gridbox.WithFill[float64](0))
//
//	// Visit every cell in canonical (dimension 0 fastest) order.
//	for it := gridbox.NewBoxIter(box); it.Ok(); it.Next() {
//		arr.Set(it.Coord(), 0, 1.0)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Coord, Box, BoxIter, Array
//   - device: cooperative worker groups, device views, the slab cache
//   - backend/wgpu: optional GPU-backed mirror buffers via gogpu/wgpu
//
// # Dimensionality
//
// The spatial dimension is fixed at build time: three dimensions by default,
// two when building with the gridbox2d tag. It is shared by every type in the
// module; no object carries a per-instance dimension.
//
// # Accelerator Support
//
// Arrays may mirror their buffer into accelerator memory through a registered
// buffer allocator. A software allocator is always available; a GPU allocator
// backed by gogpu/wgpu registers itself on blank import of backend/wgpu.
package gridbox

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

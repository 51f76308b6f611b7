// Package device models the parallel execution regime of an accelerator on
// the host: fixed-size worker groups that advance through cooperative
// operations in lockstep, separated by explicit group-wide barriers.
//
// A [Group] runs one function on every worker concurrently. Within the
// function, [Worker.Sync] is the only suspension point; writes made before a
// barrier are visible to every worker after it. By convention only the
// leader (worker 0) mutates shared metadata, and a barrier publishes it.
//
// [View] gives a worker group strided, component-major access to a flat
// buffer over a box, and [SlabCache] maintains a sliding window of
// codimension-1 slabs over a larger source view, so a sweep along one
// direction keeps only a bounded number of layers resident.
package device

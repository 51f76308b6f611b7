package device

import "sync"

// Group is a fixed cohort of workers executing one function in lockstep,
// the host-side analogue of a GPU thread block. Workers coordinate only
// through group-wide barriers.
type Group struct {
	n   int
	bar barrier
}

// NewGroup creates a group of n workers.
func NewGroup(n int) *Group {
	assert(n > 0, "group needs at least one worker")
	g := &Group{n: n}
	g.bar.init(n)
	return g
}

// Size returns the number of workers in the group.
func (g *Group) Size() int { return g.n }

// Run executes fn on every worker concurrently and returns once all workers
// have finished. fn must call Sync on every worker the same number of times,
// or the group deadlocks.
func (g *Group) Run(fn func(*Worker)) {
	var wg sync.WaitGroup
	wg.Add(g.n)
	for i := 0; i < g.n; i++ {
		go func(idx int) {
			defer wg.Done()
			fn(&Worker{index: idx, group: g})
		}(i)
	}
	wg.Wait()
}

// Worker identifies one execution lane within a Group.
type Worker struct {
	index int
	group *Group
}

// Index returns the worker's position within the group, starting at zero.
func (w *Worker) Index() int { return w.index }

// Count returns the size of the worker's group.
func (w *Worker) Count() int { return w.group.n }

// Leader reports whether this worker owns shared metadata writes. Only the
// leader may mutate state other workers read; everyone else treats it as
// read-only until the next Sync.
func (w *Worker) Leader() bool { return w.index == 0 }

// Sync blocks until every worker in the group has called Sync. Writes made
// before the barrier are visible to all workers after it.
func (w *Worker) Sync() { w.group.bar.await() }

// barrier is a reusable group-wide rendezvous.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int
	count int
	gen   uint
}

func (b *barrier) init(n int) {
	b.n = n
	b.cond = sync.NewCond(&b.mu)
}

func (b *barrier) await() {
	b.mu.Lock()
	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
	} else {
		for gen == b.gen {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}

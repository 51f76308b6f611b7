package gridbox

// Stream is an ordered queue of asynchronous transfer operations, the host
// analogue of a device stream. Work submitted to one stream runs in
// submission order on a dedicated goroutine; different streams are unordered
// with respect to each other.
type Stream struct {
	ops chan func()
	fin chan struct{}
}

// NewStream starts a stream. Callers must Close it when done.
func NewStream() *Stream {
	s := &Stream{
		ops: make(chan func(), 16),
		fin: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	defer close(s.fin)
	for fn := range s.ops {
		fn()
	}
}

func (s *Stream) submit(fn func()) {
	s.ops <- fn
}

// Sync blocks until every operation submitted before the call has completed.
func (s *Stream) Sync() {
	done := make(chan struct{})
	s.ops <- func() { close(done) }
	<-done
}

// Close drains the stream and stops its goroutine. The stream must not be
// used afterwards.
func (s *Stream) Close() {
	close(s.ops)
	<-s.fin
}

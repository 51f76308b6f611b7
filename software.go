package gridbox

import "fmt"

// SoftwareAllocator is the built-in CPU allocator and the default for
// mirrored Arrays. Its buffers live in ordinary Go memory, so transfers are
// plain copies and device views can address the storage directly. It is what
// runs when no GPU backend is imported, and what tests run against.
type SoftwareAllocator struct{}

// Name returns "software".
func (SoftwareAllocator) Name() string { return "software" }

// Alloc allocates a zeroed slice-backed buffer.
func (SoftwareAllocator) Alloc(size int) (DeviceBuffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("gridbox: software alloc: negative size %d", size)
	}
	return &softwareBuffer{mem: make([]byte, size)}, nil
}

type softwareBuffer struct {
	mem []byte
}

func (b *softwareBuffer) Size() int { return len(b.mem) }

func (b *softwareBuffer) Write(offset int, src []byte) error {
	if offset < 0 || offset+len(src) > len(b.mem) {
		return fmt.Errorf("gridbox: software write: range [%d,%d) outside buffer of %d bytes",
			offset, offset+len(src), len(b.mem))
	}
	copy(b.mem[offset:], src)
	return nil
}

func (b *softwareBuffer) Read(offset int, dst []byte) error {
	if offset < 0 || offset+len(dst) > len(b.mem) {
		return fmt.Errorf("gridbox: software read: range [%d,%d) outside buffer of %d bytes",
			offset, offset+len(dst), len(b.mem))
	}
	copy(dst, b.mem[offset:])
	return nil
}

func (b *softwareBuffer) Bytes() ([]byte, bool) { return b.mem, true }

func (b *softwareBuffer) Release() { b.mem = nil }

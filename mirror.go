package gridbox

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// Mirroring errors.
var (
	// ErrNotDefined is returned when mirroring an Array that has no buffer.
	ErrNotDefined = errors.New("gridbox: array has no buffer defined")

	// ErrNoMirror is returned by transfer operations on an unmirrored Array.
	ErrNoMirror = errors.New("gridbox: array has no device mirror")

	// ErrNotAddressable is returned when deriving a device view from a
	// buffer whose storage the host cannot address directly.
	ErrNotAddressable = errors.New("gridbox: device buffer is not host-addressable")
)

// BufferAllocator allocates device-side buffers for mirrored Arrays.
//
// Exactly one allocator is active at a time. The built-in software allocator
// is active by default; GPU-backed allocators replace it by calling
// RegisterBufferAllocator, typically from an init function triggered by a
// blank import:
//
//	import _ "github.com/gogpu/gridbox/backend/wgpu" // GPU mirror buffers
type BufferAllocator interface {
	// Name returns the allocator identifier (e.g. "software", "wgpu").
	Name() string

	// Alloc allocates a device buffer of size bytes.
	Alloc(size int) (DeviceBuffer, error)
}

// DeviceBuffer is the device half of a mirrored allocation. The host half is
// the Array's own buffer; the two lifetimes are tied together by the Array,
// which releases the device side when it is released itself.
//
// All offsets and sizes are in bytes.
type DeviceBuffer interface {
	// Size returns the buffer size in bytes.
	Size() int

	// Write transfers src into the buffer at offset (host to device).
	Write(offset int, src []byte) error

	// Read transfers from the buffer at offset into dst (device to host).
	Read(offset int, dst []byte) error

	// Bytes returns the buffer's storage when the host can address it
	// directly, as the software allocator's can. Device views index through
	// this storage; ok is false when the buffer lives in memory the host
	// cannot touch.
	Bytes() (data []byte, ok bool)

	// Release frees the device-side allocation. The buffer must not be used
	// afterwards.
	Release()
}

var (
	allocMu   sync.RWMutex
	allocator BufferAllocator = SoftwareAllocator{}
)

// RegisterBufferAllocator installs a device buffer allocator, replacing the
// current one. Buffers already allocated stay with the allocator that made
// them. Passing nil restores the built-in software allocator.
func RegisterBufferAllocator(a BufferAllocator) {
	if a == nil {
		a = SoftwareAllocator{}
	}
	allocMu.Lock()
	allocator = a
	allocMu.Unlock()
	if ls, ok := a.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
	Logger().Info("gridbox: buffer allocator registered", "name", a.Name())
}

// ActiveAllocator returns the allocator mirrored Arrays currently use.
func ActiveAllocator() BufferAllocator {
	allocMu.RLock()
	a := allocator
	allocMu.RUnlock()
	return a
}

// Mirror pairs an Array's host buffer with a device buffer. It is created by
// Array.EnableMirror and freed with the Array; the device side never outlives
// the host side.
type Mirror struct {
	dev DeviceBuffer
}

// Device returns the device half of the pair. Callers must not Release it;
// the owning Array does.
func (m *Mirror) Device() DeviceBuffer { return m.dev }

func (m *Mirror) release() {
	if m.dev != nil {
		m.dev.Release()
		m.dev = nil
	}
}

// EnableMirror allocates a device buffer for the Array through the active
// allocator. It is a no-op when the Array is already mirrored. The device
// buffer's contents are undefined until the first CopyToDevice.
func (a *Array[T]) EnableMirror() error {
	if !a.Defined() {
		return ErrNotDefined
	}
	if a.mirror != nil {
		return nil
	}
	dev, err := ActiveAllocator().Alloc(int(a.SizeBytes()))
	if err != nil {
		return fmt.Errorf("gridbox: mirror allocation: %w", err)
	}
	a.mirror = &Mirror{dev: dev}
	return nil
}

// Mirrored reports whether the Array has a device mirror.
func (a *Array[T]) Mirrored() bool { return a.mirror != nil }

// Mirror returns the Array's mirror, or nil when none exists.
func (a *Array[T]) Mirror() *Mirror { return a.mirror }

// hostBytes views the Array's buffer as raw bytes for transfer.
func (a *Array[T]) hostBytes() []byte {
	if len(a.data) == 0 {
		return nil
	}
	var zero T
	n := len(a.data) * int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&a.data[0])), n)
}

// CopyToDevice transfers the whole host buffer to the device mirror,
// blocking until the transfer completes.
func (a *Array[T]) CopyToDevice() error {
	if a.mirror == nil {
		return ErrNoMirror
	}
	return a.mirror.dev.Write(0, a.hostBytes())
}

// CopyToHost transfers the whole device mirror back into the host buffer,
// blocking until the transfer completes.
func (a *Array[T]) CopyToHost() error {
	if a.mirror == nil {
		return ErrNoMirror
	}
	return a.mirror.dev.Read(0, a.hostBytes())
}

// CopyToDeviceAsync enqueues a host-to-device transfer on the stream.
// Operations on one stream apply in submission order; nothing is ordered
// across streams. Transfer errors are reported through the package logger.
func (a *Array[T]) CopyToDeviceAsync(s *Stream) error {
	if a.mirror == nil {
		return ErrNoMirror
	}
	dev, src := a.mirror.dev, a.hostBytes()
	s.submit(func() {
		if err := dev.Write(0, src); err != nil {
			Logger().Warn("gridbox: async copy to device failed", "err", err)
		}
	})
	return nil
}

// CopyToHostAsync enqueues a device-to-host transfer on the stream.
func (a *Array[T]) CopyToHostAsync(s *Stream) error {
	if a.mirror == nil {
		return ErrNoMirror
	}
	dev, dst := a.mirror.dev, a.hostBytes()
	s.submit(func() {
		if err := dev.Read(0, dst); err != nil {
			Logger().Warn("gridbox: async copy to host failed", "err", err)
		}
	})
	return nil
}

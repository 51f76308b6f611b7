//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gridbox"
)

// minBufSize is the smallest allocation the HAL accepts.
const minBufSize = 4

// Alloc creates a device buffer of size bytes with a zeroed host shadow.
func (a *Allocator) Alloc(size int) (gridbox.DeviceBuffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("wgpu: negative buffer size %d", size)
	}
	devSize := uint64(size)
	if devSize < minBufSize {
		devSize = minBufSize
	}
	a.mu.Lock()
	device := a.device
	a.mu.Unlock()
	if device == nil {
		return nil, fmt.Errorf("wgpu: no device")
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gridbox_mirror",
		Size:  devSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer: %w", err)
	}
	a.slogger().Debug("wgpu: mirror buffer allocated", "bytes", size)
	return &deviceBuffer{alloc: a, buf: buf, shadow: make([]byte, size)}, nil
}

// deviceBuffer is one mirror allocation: the hal buffer plus a host shadow
// holding the bytes last written through it. Transfers keep shadow and
// device in step, so Read and Bytes are served from the shadow.
type deviceBuffer struct {
	alloc  *Allocator
	buf    hal.Buffer
	shadow []byte
}

func (b *deviceBuffer) Size() int { return len(b.shadow) }

func (b *deviceBuffer) Write(offset int, src []byte) error {
	if offset < 0 || offset+len(src) > len(b.shadow) {
		return fmt.Errorf("wgpu: write range [%d,%d) outside buffer of %d bytes",
			offset, offset+len(src), len(b.shadow))
	}
	copy(b.shadow[offset:], src)
	b.alloc.mu.Lock()
	queue := b.alloc.queue
	b.alloc.mu.Unlock()
	if queue == nil {
		return fmt.Errorf("wgpu: no queue")
	}
	queue.WriteBuffer(b.buf, uint64(offset), src)
	return nil
}

func (b *deviceBuffer) Read(offset int, dst []byte) error {
	if offset < 0 || offset+len(dst) > len(b.shadow) {
		return fmt.Errorf("wgpu: read range [%d,%d) outside buffer of %d bytes",
			offset, offset+len(dst), len(b.shadow))
	}
	copy(dst, b.shadow[offset:])
	return nil
}

func (b *deviceBuffer) Bytes() ([]byte, bool) { return b.shadow, true }

func (b *deviceBuffer) Release() {
	if b.buf != nil {
		b.alloc.mu.Lock()
		device := b.alloc.device
		b.alloc.mu.Unlock()
		if device != nil {
			device.DestroyBuffer(b.buf)
		}
		b.buf = nil
	}
	b.shadow = nil
}

//go:build !nogpu

// Package wgpu registers a GPU-backed buffer allocator for mirrored arrays.
//
// Import this package to place device mirrors in wgpu/hal buffers instead of
// host memory. The allocator opens a standalone Vulkan device; if GPU
// initialization fails (no Vulkan available), registration is silently
// skipped and mirrors stay on the built-in software allocator.
//
// Applications that already hold a GPU device (e.g. through gogpu) share it
// with SetDeviceProvider instead of letting the allocator open its own.
//
// Usage:
//
//	import _ "github.com/gogpu/gridbox/backend/wgpu" // GPU mirror buffers
package wgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gridbox"
)

// DeviceHandle is an alias for gpucontext.DeviceProvider, naming the
// integration point a host application implements to share its GPU device
// with the allocator.
type DeviceHandle = gpucontext.DeviceProvider

func init() {
	a := &Allocator{}
	if err := a.initGPU(); err != nil {
		gridbox.Logger().Warn("wgpu allocator not available", "err", err)
		return
	}
	gridbox.RegisterBufferAllocator(a)
}

// Allocator allocates mirror buffers in wgpu/hal device memory. Each buffer
// carries a host shadow that tracks the device contents, so readback and
// host-addressable views work without a mapping round trip.
type Allocator struct {
	mu       sync.Mutex
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool
	logger   *slog.Logger
}

// Name returns "wgpu".
func (a *Allocator) Name() string { return "wgpu" }

// SetLogger directs the allocator's diagnostics to l.
func (a *Allocator) SetLogger(l *slog.Logger) {
	a.mu.Lock()
	a.logger = l
	a.mu.Unlock()
}

func (a *Allocator) slogger() *slog.Logger {
	a.mu.Lock()
	l := a.logger
	a.mu.Unlock()
	if l == nil {
		return gridbox.Logger()
	}
	return l
}

// initGPU opens a standalone Vulkan device for transfer use. This is the
// fallback path when no external device is provided via SetDeviceProvider.
func (a *Allocator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("open device: %w", err)
	}

	a.mu.Lock()
	a.instance = instance
	a.device = openDev.Device
	a.queue = openDev.Queue
	a.mu.Unlock()
	a.slogger().Info("wgpu: GPU initialized (standalone)", "adapter", selected.Info.Name)
	return nil
}

// SetDeviceProvider switches the allocator to a shared GPU device from an
// external provider. The provider must expose HAL types through
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *Allocator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them.
	if !a.external && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}
	a.device = device
	a.queue = queue
	a.external = true
	return nil
}

// SetDeviceProvider passes a shared GPU device to the registered allocator,
// if the wgpu allocator is the one registered.
func SetDeviceProvider(provider DeviceHandle) error {
	a, ok := gridbox.ActiveAllocator().(*Allocator)
	if !ok {
		return fmt.Errorf("wgpu: allocator is not registered")
	}
	return a.SetDeviceProvider(provider)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultMaxTextureSize is the largest texture dimension accepted for eye
// targets and textures when the device does not report its own limit.
const DefaultMaxTextureSize = 8192

// DeviceHandle provides GPU device access from the host application.
//
// The viewer RECEIVES a device from its host (a gogpu window, or nothing for
// headless rendering), it never creates one. DeviceHandle is an alias for
// gpucontext.DeviceProvider so any gogpu host can be passed directly.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// halProvider is implemented by hosts that expose their HAL device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Device is the render-thread view of the host GPU.
//
// Every eye target and texture keeps a CPU copy of its pixels; when the
// device has a HAL device the GPU-side textures, views and render-pass
// descriptors are allocated alongside and kept in sync by upload.
// A nil *Device behaves as a CPU-only device.
//
// Device is NOT safe for concurrent use: GPU resources are owned by the
// render thread.
type Device struct {
	handle DeviceHandle
	hal    hal.Device
	queue  hal.Queue

	maxTextureSize int
}

// NewDevice wraps a host device handle. If the handle exposes HAL types
// (HalDevice/HalQueue), GPU resources are allocated for every target;
// otherwise the device is CPU-only.
func NewDevice(handle DeviceHandle) *Device {
	if handle == nil {
		handle = NullDeviceHandle{}
	}
	d := &Device{handle: handle, maxTextureSize: DefaultMaxTextureSize}

	hp, ok := handle.(halProvider)
	if !ok {
		slogger().Debug("render: device has no HAL access, using CPU targets")
		return d
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		slogger().Warn("render: provider HalDevice is not hal.Device, using CPU targets")
		return d
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		slogger().Warn("render: provider HalQueue is not hal.Queue, using CPU targets")
		return d
	}
	d.hal = device
	d.queue = queue
	slogger().Info("render: using shared GPU device")
	return d
}

// NewHALDevice creates a Device directly from HAL objects.
func NewHALDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{
		handle:         NullDeviceHandle{},
		hal:            device,
		queue:          queue,
		maxTextureSize: DefaultMaxTextureSize,
	}
}

// CPUDevice returns a device without GPU access.
func CPUDevice() *Device {
	return NewDevice(nil)
}

// HasGPU reports whether GPU-side resources are allocated on this device.
func (d *Device) HasGPU() bool {
	return d != nil && d.hal != nil && d.queue != nil
}

// Handle returns the host device handle.
func (d *Device) Handle() DeviceHandle {
	if d == nil {
		return NullDeviceHandle{}
	}
	return d.handle
}

// MaxTextureSize returns the largest accepted texture dimension.
func (d *Device) MaxTextureSize() int {
	if d == nil || d.maxTextureSize <= 0 {
		return DefaultMaxTextureSize
	}
	return d.maxTextureSize
}

// SetMaxTextureSize overrides the texture dimension limit.
func (d *Device) SetMaxTextureSize(n int) {
	if d != nil {
		d.maxTextureSize = n
	}
}

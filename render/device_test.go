// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the noop HAL backend.
func createNoopDevice(t *testing.T) (*Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return NewHALDevice(openDev.Device, openDev.Queue), cleanup
}

type fakeHALProvider struct {
	NullDeviceHandle
	device hal.Device
	queue  hal.Queue
}

func (p fakeHALProvider) HalDevice() any { return p.device }
func (p fakeHALProvider) HalQueue() any  { return p.queue }

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
}

func TestCPUDevice(t *testing.T) {
	dev := CPUDevice()
	if dev.HasGPU() {
		t.Error("CPUDevice().HasGPU() = true, want false")
	}
	if dev.MaxTextureSize() != DefaultMaxTextureSize {
		t.Errorf("MaxTextureSize() = %d, want %d", dev.MaxTextureSize(), DefaultMaxTextureSize)
	}
	if _, ok := dev.Handle().(NullDeviceHandle); !ok {
		t.Errorf("Handle() = %T, want NullDeviceHandle", dev.Handle())
	}
}

func TestNilDevice(t *testing.T) {
	var dev *Device
	if dev.HasGPU() {
		t.Error("nil Device HasGPU() = true")
	}
	if dev.MaxTextureSize() != DefaultMaxTextureSize {
		t.Errorf("nil Device MaxTextureSize() = %d", dev.MaxTextureSize())
	}
	dev.SetMaxTextureSize(16) // must not panic
}

func TestSetMaxTextureSize(t *testing.T) {
	dev := CPUDevice()
	dev.SetMaxTextureSize(64)
	if got := dev.MaxTextureSize(); got != 64 {
		t.Errorf("MaxTextureSize() = %d, want 64", got)
	}
	dev.SetMaxTextureSize(0)
	if got := dev.MaxTextureSize(); got != DefaultMaxTextureSize {
		t.Errorf("MaxTextureSize() after 0 = %d, want default", got)
	}
}

func TestNewDeviceHALProvider(t *testing.T) {
	gpu, cleanup := createNoopDevice(t)
	defer cleanup()

	dev := NewDevice(fakeHALProvider{device: gpu.hal, queue: gpu.queue})
	if !dev.HasGPU() {
		t.Fatal("NewDevice with HAL provider should have GPU access")
	}
}

func TestNewDeviceWithoutHAL(t *testing.T) {
	dev := NewDevice(fakeHALProvider{})
	if dev.HasGPU() {
		t.Error("NewDevice with nil HAL objects should fall back to CPU")
	}
}

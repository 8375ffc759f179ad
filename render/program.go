// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL sources for the two programs the compositor selects.

//go:embed shaders/composite.wgsl
var compositeShaderSource string

//go:embed shaders/widget.wgsl
var widgetShaderSource string

// ProgramKind selects how DrawQuad and Blit shade fragments while a program
// of that kind is bound.
type ProgramKind uint8

const (
	// ProgramComposite copies an eye texture opaquely to the output.
	ProgramComposite ProgramKind = iota

	// ProgramWidget modulates a widget texture (or white) by a tint color
	// and blends source-over.
	ProgramWidget
)

// String returns the program kind name.
func (k ProgramKind) String() string {
	switch k {
	case ProgramComposite:
		return "composite"
	case ProgramWidget:
		return "widget"
	default:
		return fmt.Sprintf("ProgramKind(%d)", uint8(k))
	}
}

// Program is a compiled GPU program.
type Program struct {
	name   string
	kind   ProgramKind
	spirv  []uint32
	dev    *Device
	module hal.ShaderModule
}

// CompileProgram compiles WGSL source to SPIR-V and, on a GPU device,
// creates the shader module.
//
// Compilation failures return *ShaderCompileError; missing vertex or
// fragment entry points and rejected shader modules return *ShaderLinkError.
func CompileProgram(dev *Device, name string, kind ProgramKind, wgsl string) (*Program, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, &ShaderCompileError{Program: name, Log: err.Error(), Err: err}
	}

	for _, stage := range []string{"@vertex", "@fragment"} {
		if !strings.Contains(wgsl, stage) {
			return nil, &ShaderLinkError{
				Program: name,
				Log:     "missing " + stage + " entry point",
				Err:     errors.New("render: missing entry point"),
			}
		}
	}

	if len(spirvBytes)%4 != 0 {
		return nil, &ShaderLinkError{
			Program: name,
			Log:     fmt.Sprintf("SPIR-V length %d is not a multiple of 4", len(spirvBytes)),
			Err:     errors.New("render: truncated SPIR-V"),
		}
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	p := &Program{name: name, kind: kind, spirv: words, dev: dev}
	if dev.HasGPU() {
		module, err := dev.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label: name,
			Source: hal.ShaderSource{
				SPIRV: words,
			},
		})
		if err != nil {
			return nil, &ShaderLinkError{Program: name, Log: err.Error(), Err: err}
		}
		p.module = module
	}
	return p, nil
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Kind returns how the program shades fragments.
func (p *Program) Kind() ProgramKind { return p.kind }

// SPIRV returns the compiled SPIR-V words.
func (p *Program) SPIRV() []uint32 { return p.spirv }

// Module returns the GPU shader module, or nil on CPU devices.
func (p *Program) Module() hal.ShaderModule { return p.module }

// Destroy releases the shader module.
func (p *Program) Destroy() {
	if p.module != nil && p.dev.HasGPU() {
		p.dev.hal.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// ProgramSources holds the WGSL used for each program. Empty fields use the
// embedded defaults.
type ProgramSources struct {
	Composite string
	Widget    string
}

// ProgramSet holds the composite and widget programs.
// A program that failed to build is nil; binding it leaves the previously
// bound program active.
type ProgramSet struct {
	Composite *Program
	Widget    *Program
}

// LoadPrograms builds both programs. Failures are logged and returned but do
// not abort: the corresponding field is left nil.
func LoadPrograms(dev *Device, src ProgramSources) (*ProgramSet, []error) {
	if src.Composite == "" {
		src.Composite = compositeShaderSource
	}
	if src.Widget == "" {
		src.Widget = widgetShaderSource
	}

	set := &ProgramSet{}
	var errs []error

	composite, err := CompileProgram(dev, "composite", ProgramComposite, src.Composite)
	if err != nil {
		slogger().Warn("render: composite program unavailable", "err", err)
		errs = append(errs, err)
	}
	set.Composite = composite

	widget, err := CompileProgram(dev, "widget", ProgramWidget, src.Widget)
	if err != nil {
		slogger().Warn("render: widget program unavailable", "err", err)
		errs = append(errs, err)
	}
	set.Widget = widget

	return set, errs
}

// Destroy releases both programs.
func (s *ProgramSet) Destroy() {
	if s.Composite != nil {
		s.Composite.Destroy()
	}
	if s.Widget != nil {
		s.Widget.Destroy()
	}
}

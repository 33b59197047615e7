// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"cogentcore.org/meshview/gpu"
	"cogentcore.org/meshview/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// CompileEffect compiles the WGSL source of desc and creates its
// uniform buffer and binding layouts. Pipelines are created on first
// use, per vertex layout.
func (d *Device) CompileEffect(desc *gpu.EffectDesc, source []byte) (gpu.Effect, error) {
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(source)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", gpu.ErrEffectCompile, desc.Name, err)
	}
	ef := &Effect{dev: d, desc: desc, module: module,
		views:      map[uint32]*wgpu.TextureView{},
		pipelines:  map[string]*wgpu.RenderPipeline{},
		techniques: map[string]*Technique{},
		variables:  map[string]gpu.Variable{},
	}
	if err := ef.init(); err != nil {
		ef.Release()
		return nil, fmt.Errorf("%w: %s: %w", gpu.ErrEffectCompile, desc.Name, err)
	}
	return ef, nil
}

// Effect is a compiled WGSL program with one bind group: the
// uniform block, the technique sampler and the resources.
type Effect struct {
	dev    *Device
	desc   *gpu.EffectDesc
	module *wgpu.ShaderModule

	uniforms      []byte
	uniformBuffer *wgpu.Buffer
	uniformsDirty bool

	// views are the bound textures by binding index.
	views map[uint32]*wgpu.TextureView

	samplers       [gpu.FilterAnisotropic + 1]*wgpu.Sampler
	bindLayout     *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	bindGroup       *wgpu.BindGroup
	bindGroupFilter gpu.FilterModes
	bindGroupDirty  bool

	pipelines  map[string]*wgpu.RenderPipeline
	techniques map[string]*Technique
	variables  map[string]gpu.Variable
}

func (ef *Effect) init() error {
	bindings, size := ef.desc.Bindings()
	for _, b := range bindings {
		var v gpu.Variable
		switch b.Kind {
		case gpu.MatrixVariableKind:
			v = &matrixVariable{variable{ef, b}}
		case gpu.ResourceVariableKind:
			v = &resourceVariable{variable{ef, b}}
		default:
			v = &scalarVariable{variable{ef, b}}
		}
		ef.variables[b.Name] = v
	}
	for _, td := range ef.desc.Techniques {
		tc := &Technique{ef: ef, desc: td}
		for i := range td.Passes {
			tc.passes = append(tc.passes, &Pass{tech: tc, desc: &tc.desc.Passes[i]})
		}
		ef.techniques[td.Name] = tc
	}

	var entries []wgpu.BindGroupLayoutEntry
	stages := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	if size > 0 {
		ef.uniforms = make([]byte, size)
		buf, err := ef.dev.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: ef.desc.Name + " uniforms",
			Size:  uint64(size),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		ef.uniformBuffer = buf
		ef.uniformsDirty = true
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    gpu.UniformBinding,
			Visibility: stages,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: uint64(size)},
		})
	}
	if ef.desc.HasResources() {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    gpu.SamplerBinding,
			Visibility: wgpu.ShaderStageFragment,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
		})
		for _, b := range bindings {
			if b.Kind != gpu.ResourceVariableKind {
				continue
			}
			entries = append(entries, wgpu.BindGroupLayoutEntry{
				Binding:    b.Binding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			})
		}
	}
	bgl, err := ef.dev.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   ef.desc.Name,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	ef.bindLayout = bgl
	ef.pipelineLayout, err = ef.dev.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            ef.desc.Name,
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return err
	}
	ef.bindGroupDirty = true
	return nil
}

func (ef *Effect) Name() string { return ef.desc.Name }

func (ef *Effect) TechniqueByName(name string) gpu.Technique {
	if tc, ok := ef.techniques[name]; ok {
		return tc
	}
	return nil
}

func (ef *Effect) VariableByName(name string) gpu.Variable {
	return ef.variables[name]
}

// sampler returns the sampler for the filter mode, creating it on
// first use.
func (ef *Effect) sampler(fm gpu.FilterModes) (*wgpu.Sampler, error) {
	if fm < 0 || int(fm) >= len(ef.samplers) {
		fm = gpu.FilterPoint
	}
	if s := ef.samplers[fm]; s != nil {
		return s, nil
	}
	sd := &wgpu.SamplerDescriptor{
		Label:         ef.desc.Name + " " + fm.String(),
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
	switch fm {
	case gpu.FilterPoint:
		sd.MagFilter = wgpu.FilterModeNearest
		sd.MinFilter = wgpu.FilterModeNearest
		sd.MipmapFilter = wgpu.MipmapFilterModeNearest
	case gpu.FilterAnisotropic:
		sd.MaxAnisotropy = 16
	}
	s, err := ef.dev.device.CreateSampler(sd)
	if err != nil {
		return nil, err
	}
	ef.samplers[fm] = s
	return s, nil
}

// prepare uploads changed uniforms and rebuilds the bind group when
// a texture or the sampler changed.
func (ef *Effect) prepare(fm gpu.FilterModes) error {
	if ef.uniformsDirty && ef.uniformBuffer != nil {
		if err := ef.dev.queue.WriteBuffer(ef.uniformBuffer, 0, ef.uniforms); err != nil {
			return err
		}
		ef.uniformsDirty = false
	}
	if ef.bindGroup != nil && !ef.bindGroupDirty && (fm == ef.bindGroupFilter || !ef.desc.HasResources()) {
		return nil
	}
	var entries []wgpu.BindGroupEntry
	if ef.uniformBuffer != nil {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: gpu.UniformBinding,
			Buffer:  ef.uniformBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}
	if ef.desc.HasResources() {
		s, err := ef.sampler(fm)
		if err != nil {
			return err
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: gpu.SamplerBinding, Sampler: s})
		bindings, _ := ef.desc.Bindings()
		for _, b := range bindings {
			if b.Kind != gpu.ResourceVariableKind {
				continue
			}
			view := ef.views[b.Binding]
			if view == nil {
				view = ef.dev.dummyView()
			}
			entries = append(entries, wgpu.BindGroupEntry{Binding: b.Binding, TextureView: view})
		}
	}
	bg, err := ef.dev.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   ef.desc.Name,
		Layout:  ef.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	if ef.bindGroup != nil {
		ef.bindGroup.Release()
	}
	ef.bindGroup = bg
	ef.bindGroupFilter = fm
	ef.bindGroupDirty = false
	return nil
}

// pipeline returns the render pipeline of the pass for the given
// vertex layout, topology and depth buffer, creating it on first use.
func (ef *Effect) pipeline(ps *Pass, vl *gpu.VertexLayout, tp gpu.Topologies, format wgpu.TextureFormat, depth bool) (*wgpu.RenderPipeline, error) {
	key := ps.tech.desc.Name + "/" + ps.desc.Name + "/" + vl.Key() + "/" + tp.String() + "/" + strconv.Itoa(int(format)) + "/" + strconv.FormatBool(depth)
	if pl, ok := ef.pipelines[key]; ok {
		return pl, nil
	}
	vbl, err := vertexBufferLayout(vl)
	if err != nil {
		return nil, err
	}
	pd := &wgpu.RenderPipelineDescriptor{
		Label:  ef.desc.Name + " " + ps.desc.Name,
		Layout: ef.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     ef.module,
			EntryPoint: ps.desc.Vertex,
			Buffers:    []wgpu.VertexBufferLayout{vbl},
		},
		Fragment: &wgpu.FragmentState{
			Module:     ef.module,
			EntryPoint: ps.desc.Fragment,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topologies[tp],
			FrontFace: wgpu.FrontFaceCW,
			CullMode:  cullModes[ps.desc.Cull],
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if tp == gpu.TriangleStrip {
		pd.Primitive.StripIndexFormat = wgpu.IndexFormatUint32
	}
	if depth {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: !ps.desc.NoDepthWrite,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		}
	}
	pl, err := ef.dev.device.CreateRenderPipeline(pd)
	if err != nil {
		return nil, err
	}
	ef.pipelines[key] = pl
	return pl, nil
}

// Release releases the pipelines, bind group, samplers, layouts,
// uniform buffer and shader module.
func (ef *Effect) Release() {
	for k, pl := range ef.pipelines {
		pl.Release()
		delete(ef.pipelines, k)
	}
	if ef.bindGroup != nil {
		ef.bindGroup.Release()
		ef.bindGroup = nil
	}
	for i, s := range ef.samplers {
		if s != nil {
			s.Release()
			ef.samplers[i] = nil
		}
	}
	if ef.pipelineLayout != nil {
		ef.pipelineLayout.Release()
		ef.pipelineLayout = nil
	}
	if ef.bindLayout != nil {
		ef.bindLayout.Release()
		ef.bindLayout = nil
	}
	if ef.uniformBuffer != nil {
		ef.uniformBuffer.Release()
		ef.uniformBuffer = nil
	}
	if ef.module != nil {
		ef.module.Release()
		ef.module = nil
	}
}

// Technique is a named list of passes sharing a sampler filter.
type Technique struct {
	ef     *Effect
	desc   gpu.TechniqueDesc
	passes []*Pass
}

func (tc *Technique) Name() string               { return tc.desc.Name }
func (tc *Technique) Filter() gpu.FilterModes    { return tc.desc.Filter }
func (tc *Technique) NumPasses() int             { return len(tc.passes) }
func (tc *Technique) PassByIndex(i int) gpu.Pass { return tc.passes[i] }

// Pass is one pass of a [Technique].
type Pass struct {
	tech *Technique
	desc *gpu.PassDesc
}

func (ps *Pass) Name() string { return ps.desc.Name }

// Apply uploads the effect variables and binds the pipeline for the
// context's current input layout and topology.
func (ps *Pass) Apply(ctx gpu.Context) error {
	c, ok := ctx.(*Context)
	if !ok {
		return fmt.Errorf("webgpu.Pass.Apply: %w context %T", gpu.ErrUnsupported, ctx)
	}
	if c.layout == nil {
		return fmt.Errorf("webgpu.Pass.Apply %s: no input layout", ps.desc.Name)
	}
	if c.target == nil {
		return fmt.Errorf("webgpu.Pass.Apply %s: no render target", ps.desc.Name)
	}
	ef := ps.tech.ef
	pl, err := ef.pipeline(ps, c.layout, c.topology, c.target.format, c.depth != nil)
	if err != nil {
		return fmt.Errorf("webgpu.Pass.Apply %s: %w", ps.desc.Name, err)
	}
	if err := ef.prepare(ps.tech.desc.Filter); err != nil {
		return fmt.Errorf("webgpu.Pass.Apply %s: %w", ps.desc.Name, err)
	}
	if err := c.beginPass(); err != nil {
		return err
	}
	c.pass.SetPipeline(pl)
	c.pass.SetBindGroup(0, ef.bindGroup, nil)
	c.applied = ps
	return nil
}

type variable struct {
	ef *Effect
	b  gpu.VariableBinding
}

func (v *variable) Name() string            { return v.b.Name }
func (v *variable) Kind() gpu.VariableKinds { return v.b.Kind }

type matrixVariable struct{ variable }

func (v *matrixVariable) SetMatrix(m *math32.Matrix4) {
	copy(v.ef.uniforms[v.b.Offset:], gpu.ToBytes(m[:]))
	v.ef.uniformsDirty = true
}

type scalarVariable struct{ variable }

func (v *scalarVariable) SetBool(b bool) {
	var u uint32
	if b {
		u = 1
	}
	binary.LittleEndian.PutUint32(v.ef.uniforms[v.b.Offset:], u)
	v.ef.uniformsDirty = true
}

func (v *scalarVariable) SetFloat(f float32) {
	binary.LittleEndian.PutUint32(v.ef.uniforms[v.b.Offset:], math.Float32bits(f))
	v.ef.uniformsDirty = true
}

type resourceVariable struct{ variable }

// SetResource binds the texture view, or unbinds it for nil.
func (v *resourceVariable) SetResource(view gpu.ShaderResourceView) {
	var tv *wgpu.TextureView
	if vw, ok := view.(*View); ok && vw != nil {
		tv = vw.view
	}
	v.ef.views[v.b.Binding] = tv
	v.ef.bindGroupDirty = true
}

package pipeline

import (
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the fixed-function
// state and resource layouts it was built from.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// vertex and fragment shaders are required before registering the pipeline with the renderer.
	vertexShader, fragmentShader shader.Shader

	// bindGroupLayouts are the shared layout values this pipeline binds against,
	// ordered by group index. The same values build the bind groups that will be
	// set at draw time.
	bindGroupLayouts []bind_group_layout.Layout

	// vertexBuffers describe the vertex buffer slots this pipeline consumes.
	vertexBuffers []wgpu.VertexBufferLayout

	// renderPipeline is the compiled GPU pipeline, set by the renderer on registration.
	renderPipeline *wgpu.RenderPipeline

	// Fixed-function state, toggled with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthAttachment   bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline state object: the
// vertex/fragment shader pair, the bind group layouts it binds against, the
// vertex buffer layouts it consumes, and all fixed-function state (depth,
// blend, cull, topology) required to compile it.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// BindGroupLayouts returns the shared layout values for this pipeline, ordered by group index.
	//
	// Returns:
	//   - []bind_group_layout.Layout: the layouts this pipeline binds against
	BindGroupLayouts() []bind_group_layout.Layout

	// VertexBufferLayouts returns the vertex buffer slot descriptions for this pipeline.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts, ordered by slot
	VertexBufferLayouts() []wgpu.VertexBufferLayout

	// Pipeline returns the compiled render pipeline, or nil if not yet registered.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline or nil
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// HasDepthAttachment returns whether this pipeline renders into a pass with
	// a depth attachment. The depth overlay pipeline renders into a color-only
	// pass and returns false.
	//
	// Returns:
	//   - bool: true if the pipeline's target pass has a depth attachment
	HasDepthAttachment() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the compiled render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new render Pipeline with the given key and options.
// Defaults: depth test and write enabled, depth attachment present, no
// blending, no culling, triangle-list topology, CCW front face, full write
// mask, standard alpha blend state available for pipelines that enable
// blending.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthAttachment:   true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) BindGroupLayouts() []bind_group_layout.Layout {
	return p.bindGroupLayouts
}

func (p *pipeline) VertexBufferLayouts() []wgpu.VertexBufferLayout {
	return p.vertexBuffers
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) HasDepthAttachment() bool {
	return p.depthAttachment
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

package depth_overlay

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group bindings for the overlay, matching the depth_overlay layout:
// the depth texture at 0 and the comparison sampler at 1.
const (
	depthTextureBinding = 0
	depthSamplerBinding = 1
)

// quadIndexCount is the index count of the full-screen quad.
const quadIndexCount = 6

// overlay is the implementation of the Overlay interface.
type overlay struct {
	mu          *sync.Mutex
	provider    bind_group_provider.BindGroupProvider
	layout      bind_group_layout.Layout
	initialized bool
}

// Overlay owns the GPU resources for the full-screen depth visualization
// pass: a static quad, a comparison sampler, and a bind group referencing the
// renderer's current depth texture view. Because the depth texture is
// recreated on every surface resize, Resize must be called after
// renderer.Resize so the bind group tracks the new view.
type Overlay interface {
	// Init creates the quad buffers, the comparison sampler, and the bind
	// group against the renderer's current depth texture view.
	//
	// Parameters:
	//   - r: the renderer used to create GPU resources
	//   - layout: the shared depth overlay bind group layout
	//
	// Returns:
	//   - error: an error if any GPU resource creation fails
	Init(r renderer.Renderer, layout bind_group_layout.Layout) error

	// Resize rebuilds the bind group from the renderer's current depth
	// texture view. Must be called after every renderer.Resize.
	//
	// Parameters:
	//   - r: the renderer holding the new depth texture view
	//
	// Returns:
	//   - error: an error if the overlay is uninitialized or rebinding fails
	Resize(r renderer.Renderer) error

	// Draw records the overlay draw call. The caller must have opened the
	// overlay pass via renderer.BeginOverlayPass.
	//
	// Parameters:
	//   - r: the renderer recording the current frame
	//
	// Returns:
	//   - error: an error if the overlay is uninitialized or the draw fails
	Draw(r renderer.Renderer) error

	// Provider retrieves the overlay's bind group provider.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil before Init
	Provider() bind_group_provider.BindGroupProvider

	// Release frees the overlay's GPU resources. The depth texture view is
	// owned by the renderer and is not released here.
	Release()
}

var _ Overlay = &overlay{}

// NewOverlay creates an uninitialized depth overlay. Call Init once the
// renderer's surface is configured.
//
// Returns:
//   - Overlay: a new Overlay instance
func NewOverlay() Overlay {
	return &overlay{
		mu: &sync.Mutex{},
	}
}

// quadVertexData returns the full-screen quad vertices: clip-space position
// (vec2) and texture coordinates (vec2) per vertex, UV origin at the top left.
func quadVertexData() []float32 {
	return []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}
}

// quadIndexData returns the two counter-clockwise triangles of the quad.
func quadIndexData() []uint32 {
	return []uint32{0, 1, 2, 0, 2, 3}
}

func (o *overlay) Init(r renderer.Renderer, layout bind_group_layout.Layout) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	depthView := r.DepthTextureView()
	if depthView == nil {
		return fmt.Errorf("depth overlay: renderer has no depth texture view, configure the surface first")
	}

	provider := bind_group_provider.NewBindGroupProvider("depth_overlay")

	vertices := quadVertexData()
	indices := quadIndexData()
	if err := r.InitMeshBuffers(provider, common.SliceToBytes(vertices), common.SliceToBytes(indices), quadIndexCount); err != nil {
		return fmt.Errorf("depth overlay quad buffers: %w", err)
	}

	if err := r.InitSampler(provider, depthSamplerBinding, common.SamplerStagingData{
		Compare: wgpu.CompareFunctionLessEqual,
	}); err != nil {
		return fmt.Errorf("depth overlay sampler: %w", err)
	}

	provider.SetTextureView(depthTextureBinding, depthView)
	if err := r.InitBindGroup(provider, layout, nil, nil); err != nil {
		return fmt.Errorf("depth overlay bind group: %w", err)
	}

	o.provider = provider
	o.layout = layout
	o.initialized = true
	return nil
}

func (o *overlay) Resize(r renderer.Renderer) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return fmt.Errorf("depth overlay: resize before init")
	}

	depthView := r.DepthTextureView()
	if depthView == nil {
		return fmt.Errorf("depth overlay: renderer has no depth texture view")
	}

	// The old view was already released by the surface reconfigure, so only
	// the stale bind group needs releasing here.
	if bg := o.provider.BindGroup(); bg != nil {
		bg.Release()
		o.provider.SetBindGroup(nil)
	}

	o.provider.SetTextureView(depthTextureBinding, depthView)
	if err := r.InitBindGroup(o.provider, o.layout, nil, nil); err != nil {
		return fmt.Errorf("depth overlay bind group rebuild: %w", err)
	}
	return nil
}

func (o *overlay) Draw(r renderer.Renderer) error {
	o.mu.Lock()
	provider := o.provider
	initialized := o.initialized
	o.mu.Unlock()

	if !initialized {
		return fmt.Errorf("depth overlay: draw before init")
	}
	return r.DrawCall(pipeline.KeyDepthOverlay, provider, nil, 1, []bind_group_provider.BindGroupProvider{provider})
}

func (o *overlay) Provider() bind_group_provider.BindGroupProvider {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.provider
}

func (o *overlay) Release() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.provider == nil {
		return
	}
	// Drop the depth view reference before releasing the provider; the view
	// belongs to the renderer.
	o.provider.SetTextureViews(nil)
	o.provider.Release()
	o.provider = nil
	o.initialized = false
}

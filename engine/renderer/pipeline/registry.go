package pipeline

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Keys for the fixed pipeline set. Every draw in a frame goes through one of
// these four pipelines.
const (
	// KeyOpaque draws meshes whose material is fully opaque: depth test and
	// write enabled, no blending.
	KeyOpaque = "opaque"

	// KeyTransparent draws meshes with a material alpha below 1: depth test
	// and write enabled, alpha blending. Transparent draws are not sorted
	// back to front.
	KeyTransparent = "transparent"

	// KeyLightMarker draws the light's proxy mesh for visual debugging of
	// the light position. Binds only the camera and light groups.
	KeyLightMarker = "light_marker"

	// KeyDepthOverlay draws the full-screen depth visualization in its own
	// color-only pass.
	KeyDepthOverlay = "depth_overlay"
)

//go:embed assets/mesh.wgsl
var meshShaderSource string

//go:embed assets/light_marker.wgsl
var lightMarkerShaderSource string

//go:embed assets/depth_overlay.wgsl
var depthOverlayShaderSource string

// MeshVertexLayout describes vertex buffer slot 0 for mesh draws: position
// (vec3), texture coordinates (vec2), and normal (vec3), 32 bytes per vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func MeshVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x2},
			{ShaderLocation: 2, Offset: 20, Format: wgpu.VertexFormatFloat32x3},
		},
	}
}

// InstanceMatrixLayout describes vertex buffer slot 1 for mesh draws: one
// 4x4 world matrix per instance, split across four vec4 attributes at shader
// locations 5 through 8, advancing per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-instance buffer layout
func InstanceMatrixLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 64,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 5, Offset: 0, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 6, Offset: 16, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 7, Offset: 32, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 8, Offset: 48, Format: wgpu.VertexFormatFloat32x4},
		},
	}
}

// OverlayVertexLayout describes the full-screen-quad vertex buffer for the
// depth overlay: clip-space position (vec2) and texture coordinates (vec2),
// 16 bytes per vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: the quad vertex buffer layout
func OverlayVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 16,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x2},
			{ShaderLocation: 1, Offset: 8, Format: wgpu.VertexFormatFloat32x2},
		},
	}
}

// NewStandardSet builds the fixed four-pipeline set from the shared layout
// values. The layouts passed in must be the same values the resource binding
// layer builds its bind groups from; they are checked structurally against a
// freshly constructed canonical set, so a drifted layout fails here at
// startup rather than as a GPU validation error at draw time.
//
// Parameters:
//   - layouts: the shared bind group layouts
//
// Returns:
//   - []Pipeline: the four pipelines, ready for renderer registration
//   - error: an error if the layouts do not match the canonical structure
func NewStandardSet(layouts bind_group_layout.SharedLayouts) ([]Pipeline, error) {
	canonical, err := bind_group_layout.NewSharedLayouts()
	if err != nil {
		return nil, err
	}
	checks := []struct {
		name      string
		got, want bind_group_layout.Layout
	}{
		{"camera", layouts.Camera, canonical.Camera},
		{"light", layouts.Light, canonical.Light},
		{"material", layouts.Material, canonical.Material},
		{"depth_overlay", layouts.DepthOverlay, canonical.DepthOverlay},
	}
	for _, c := range checks {
		if c.got == nil {
			return nil, fmt.Errorf("pipeline set: %s layout is nil", c.name)
		}
		if !c.got.Equal(c.want) {
			return nil, fmt.Errorf("pipeline set: %s layout does not match the canonical structure", c.name)
		}
	}

	meshVS := shader.NewShader("mesh_vs", shader.ShaderTypeVertex, meshShaderSource)
	meshFS := shader.NewShader("mesh_fs", shader.ShaderTypeFragment, meshShaderSource)
	markerVS := shader.NewShader("light_marker_vs", shader.ShaderTypeVertex, lightMarkerShaderSource)
	markerFS := shader.NewShader("light_marker_fs", shader.ShaderTypeFragment, lightMarkerShaderSource)
	overlayVS := shader.NewShader("depth_overlay_vs", shader.ShaderTypeVertex, depthOverlayShaderSource)
	overlayFS := shader.NewShader("depth_overlay_fs", shader.ShaderTypeFragment, depthOverlayShaderSource)

	opaque := NewPipeline(KeyOpaque,
		WithVertexShader(meshVS),
		WithFragmentShader(meshFS),
		WithBindGroupLayouts(layouts.Camera, layouts.Light, layouts.Material),
		WithVertexBuffers(MeshVertexLayout(), InstanceMatrixLayout()),
		WithCullMode(wgpu.CullModeBack),
	)

	transparent := NewPipeline(KeyTransparent,
		WithVertexShader(meshVS),
		WithFragmentShader(meshFS),
		WithBindGroupLayouts(layouts.Camera, layouts.Light, layouts.Material),
		WithVertexBuffers(MeshVertexLayout(), InstanceMatrixLayout()),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
	)

	lightMarker := NewPipeline(KeyLightMarker,
		WithVertexShader(markerVS),
		WithFragmentShader(markerFS),
		WithBindGroupLayouts(layouts.Camera, layouts.Light),
		WithVertexBuffers(MeshVertexLayout()),
		WithCullMode(wgpu.CullModeBack),
	)

	depthOverlay := NewPipeline(KeyDepthOverlay,
		WithVertexShader(overlayVS),
		WithFragmentShader(overlayFS),
		WithBindGroupLayouts(layouts.DepthOverlay),
		WithVertexBuffers(OverlayVertexLayout()),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithDepthAttachment(false),
	)

	return []Pipeline{opaque, transparent, lightMarker, depthOverlay}, nil
}

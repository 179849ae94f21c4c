package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/lumen-go/engine/renderer/bind_group_layout"
	"github.com/Carmen-Shannon/lumen-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardSetPipelines(t *testing.T) {
	layouts, err := bind_group_layout.NewSharedLayouts()
	require.NoError(t, err)

	set, err := NewStandardSet(layouts)
	require.NoError(t, err)
	require.Len(t, set, 4)

	byKey := make(map[string]Pipeline, len(set))
	for _, p := range set {
		byKey[p.PipelineKey()] = p
	}

	opaque := byKey[KeyOpaque]
	require.NotNil(t, opaque)
	assert.True(t, opaque.DepthTestEnabled())
	assert.True(t, opaque.DepthWriteEnabled())
	assert.False(t, opaque.BlendEnabled())
	assert.Len(t, opaque.VertexBufferLayouts(), 2)
	assert.Len(t, opaque.BindGroupLayouts(), 3)

	transparent := byKey[KeyTransparent]
	require.NotNil(t, transparent)
	assert.True(t, transparent.DepthTestEnabled())
	// Depth write stays enabled for transparency; draws are not sorted.
	assert.True(t, transparent.DepthWriteEnabled())
	assert.True(t, transparent.BlendEnabled())

	marker := byKey[KeyLightMarker]
	require.NotNil(t, marker)
	assert.Len(t, marker.BindGroupLayouts(), 2)
	assert.Len(t, marker.VertexBufferLayouts(), 1)

	overlay := byKey[KeyDepthOverlay]
	require.NotNil(t, overlay)
	assert.False(t, overlay.DepthTestEnabled())
	assert.False(t, overlay.HasDepthAttachment())
	assert.Len(t, overlay.BindGroupLayouts(), 1)
}

func TestNewStandardSetRejectsMismatchedLayout(t *testing.T) {
	layouts, err := bind_group_layout.NewSharedLayouts()
	require.NoError(t, err)

	// Swap in a camera layout with the wrong uniform size.
	layouts.Camera = bind_group_layout.NewLayout("camera",
		bind_group_layout.Entry{
			Binding:        0,
			Visibility:     wgpu.ShaderStageVertex,
			Kind:           bind_group_layout.EntryKindUniformBuffer,
			MinBindingSize: 16,
		},
	)

	_, err = NewStandardSet(layouts)
	assert.Error(t, err)
}

func TestNewStandardSetRejectsNilLayout(t *testing.T) {
	layouts, err := bind_group_layout.NewSharedLayouts()
	require.NoError(t, err)
	layouts.Material = nil

	_, err = NewStandardSet(layouts)
	assert.Error(t, err)
}

func TestShaderEntryPoints(t *testing.T) {
	layouts, err := bind_group_layout.NewSharedLayouts()
	require.NoError(t, err)
	set, err := NewStandardSet(layouts)
	require.NoError(t, err)

	for _, p := range set {
		vs := p.Shader(shader.ShaderTypeVertex)
		fs := p.Shader(shader.ShaderTypeFragment)
		require.NotNil(t, vs, p.PipelineKey())
		require.NotNil(t, fs, p.PipelineKey())
		assert.Equal(t, "vs_main", vs.EntryPoint(), p.PipelineKey())
		assert.Equal(t, "fs_main", fs.EntryPoint(), p.PipelineKey())
	}
}

func TestVertexLayoutStrides(t *testing.T) {
	mesh := MeshVertexLayout()
	assert.Equal(t, uint64(32), mesh.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, mesh.StepMode)

	inst := InstanceMatrixLayout()
	assert.Equal(t, uint64(64), inst.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, inst.StepMode)
	require.Len(t, inst.Attributes, 4)
	assert.Equal(t, uint32(5), inst.Attributes[0].ShaderLocation)
	assert.Equal(t, uint32(8), inst.Attributes[3].ShaderLocation)

	quad := OverlayVertexLayout()
	assert.Equal(t, uint64(16), quad.ArrayStride)
}
